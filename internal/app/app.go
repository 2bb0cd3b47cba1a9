package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/shaiso/telemetry-playground/internal/api"
	"github.com/shaiso/telemetry-playground/internal/config"
	"github.com/shaiso/telemetry-playground/internal/domain"
	"github.com/shaiso/telemetry-playground/internal/scheduler"
	"github.com/shaiso/telemetry-playground/internal/telemetry"
)

// ErrNoRoutes — сервису не переданы маршруты.
var ErrNoRoutes = errors.New("routes are required")

// Runtime — зависимости, доступные фоновым задачам сервиса.
type Runtime struct {
	Config    config.Config
	Logger    *slog.Logger
	Providers *telemetry.Providers
}

// Service описывает один бинарник: маршруты и фоновые задачи.
type Service struct {
	Config   config.Config
	Location *domain.LocationState // nil, если сервис не отдаёт /location

	// Routes регистрирует маршруты сервиса на mux
	Routes func(h *api.Handler, mux *http.ServeMux)

	// Tasks создаёт фоновые задачи после инициализации телеметрии
	Tasks func(rt Runtime) ([]*scheduler.Periodic, error)
}

// Run запускает сервис и блокируется до отмены ctx или ошибки сервера.
//
// Порядок: телеметрия, логгер с OTel bridge, HTTP сервер и фоновые
// задачи в одной errgroup. При остановке телеметрия сбрасывается
// с таймаутом Telemetry.ShutdownTimeout.
func Run(ctx context.Context, svc Service) error {
	if svc.Routes == nil {
		return ErrNoRoutes
	}

	cfg := svc.Config
	name := cfg.ServiceName

	// Логгер без OTel bridge: ошибки экспорта и access log
	bootstrap := telemetry.NewLogger(os.Stdout, cfg.Logging, name, nil)

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, name, bootstrap)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}

	logger := telemetry.SetupLogger(cfg.Logging, name, providers.LoggerProvider)
	logger.Info("starting "+name,
		"addr", cfg.HTTP.Addr(),
		"telemetry", cfg.Telemetry.Enabled,
	)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Telemetry.ShutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			bootstrap.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	handler := api.NewHandler(api.Config{
		ServiceName:    name,
		TracerProvider: providers.TracerProvider,
		Logger:         logger,
		AccessLogger:   bootstrap,
		Location:       svc.Location,
	})

	mux := http.NewServeMux()
	svc.Routes(handler, mux)

	var tasks []*scheduler.Periodic
	if svc.Tasks != nil {
		tasks, err = svc.Tasks(Runtime{Config: cfg, Logger: logger, Providers: providers})
		if err != nil {
			return fmt.Errorf("create tasks: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return api.ListenAndServe(gctx, cfg.HTTP.Addr(), mux, cfg.HTTP.ShutdownTimeout, logger)
	})

	for _, task := range tasks {
		g.Go(func() error {
			task.Run(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("service stopped with error", "error", err)
		return err
	}

	logger.Info("stopped")
	return nil
}
