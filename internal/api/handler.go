package api

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/shaiso/telemetry-playground/internal/domain"
	"github.com/shaiso/telemetry-playground/internal/telemetry"
)

const instrumentationName = "github.com/shaiso/telemetry-playground/internal/api"

// HandlerFunc — обработчик, возвращающий ошибку вместо записи статуса.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	serviceName    string
	tracerProvider trace.TracerProvider
	tracer         trace.Tracer
	logger         *slog.Logger
	accessLogger   *slog.Logger
	location       *domain.LocationState
	rand           func() float64
	sleep          func(ctx context.Context, d time.Duration) error
	startTime      time.Time
}

// Config — конфигурация для создания Handler.
type Config struct {
	ServiceName    string
	TracerProvider trace.TracerProvider // default: глобальный
	Logger         *slog.Logger
	Location       *domain.LocationState // только для dronetracks

	// AccessLogger получает access log и ошибки обработки запросов.
	// В сервисах это логгер только в stdout, без OTel bridge, чтобы
	// в collector уходили лишь записи самих обработчиков. default: Logger
	AccessLogger *slog.Logger

	// Источник случайности и ожидание; подменяются в тестах
	Rand  func() float64                                 // [0, 1), default: math/rand/v2
	Sleep func(ctx context.Context, d time.Duration) error // default: Sleep
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	accessLogger := cfg.AccessLogger
	if accessLogger == nil {
		accessLogger = logger
	}

	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.Float64
	}

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	return &Handler{
		serviceName:    cfg.ServiceName,
		tracerProvider: tp,
		tracer:         tp.Tracer(instrumentationName),
		logger:         logger,
		accessLogger:   accessLogger,
		location:       cfg.Location,
		rand:           rnd,
		sleep:          sleep,
		startTime:      time.Now(),
	}
}

// handle адаптирует HandlerFunc к http.Handler.
// Возвращённая ошибка переводится в статус через StatusFor.
func (h *Handler) handle(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		status, code, message := StatusFor(err)
		if status >= http.StatusInternalServerError {
			h.accessLogger.ErrorContext(r.Context(), "request failed",
				"path", r.URL.Path,
				"status", status,
				"error", err,
				"request_id", w.Header().Get(RequestIDHeader),
			)
		}
		Error(w, status, code, message)
	})
}

// log возвращает логгер запроса (с request_id), если он есть в контексте.
func (h *Handler) log(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(telemetry.CtxLogger).(*slog.Logger); ok {
		return logger
	}
	return h.logger
}

// uniform возвращает случайное число секунд в [lo, hi).
func (h *Handler) uniform(lo, hi float64) float64 {
	return lo + h.rand()*(hi-lo)
}

// Sleep ждёт d или отмены контекста.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
