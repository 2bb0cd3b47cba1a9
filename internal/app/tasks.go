package app

import (
	"fmt"
	"strconv"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/shaiso/telemetry-playground/internal/domain"
	"github.com/shaiso/telemetry-playground/internal/loadgen"
	"github.com/shaiso/telemetry-playground/internal/scheduler"
	"github.com/shaiso/telemetry-playground/internal/telemetry"
)

// LoadgenTasks создаёт генератор трафика playground-app к самому себе.
// Возвращает пустой список, если генератор выключен.
func LoadgenTasks(rt Runtime) ([]*scheduler.Periodic, error) {
	cfg := rt.Config.Loadgen
	if !cfg.Enabled {
		rt.Logger.Info("load generator disabled")
		return nil, nil
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + strconv.Itoa(rt.Config.HTTP.Port)
	}

	client := telemetry.NewHTTPClient(cfg.Timeout,
		otelhttp.WithTracerProvider(rt.Providers.TracerProvider),
		otelhttp.WithMeterProvider(rt.Providers.MeterProvider),
	)

	gen, err := loadgen.New(loadgen.Config{
		BaseURL: baseURL,
		Client:  client,
		Timeout: cfg.Timeout,
		Logger:  rt.Logger,
		Meter:   rt.Providers.MeterProvider.Meter(loadgen.InstrumentationName),
	})
	if err != nil {
		return nil, fmt.Errorf("create load generator: %w", err)
	}

	p, err := scheduler.New(scheduler.Config{
		Name:   "loadgen",
		Spec:   cfg.Schedule,
		Task:   gen.Tick,
		Logger: rt.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("schedule load generator: %w", err)
	}

	rt.Logger.Info("load generator enabled", "base_url", baseURL, "schedule", cfg.Schedule, "routes", gen.Routes())
	return []*scheduler.Periodic{p}, nil
}

// LocationTasks создаёт задачу, сдвигающую положение дрона по расписанию.
func LocationTasks(state *domain.LocationState) func(rt Runtime) ([]*scheduler.Periodic, error) {
	return func(rt Runtime) ([]*scheduler.Periodic, error) {
		p, err := scheduler.New(scheduler.Config{
			Name:   "location",
			Spec:   rt.Config.Location.Schedule,
			Task:   state.AdvanceTask,
			Logger: rt.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("schedule location updater: %w", err)
		}
		return []*scheduler.Periodic{p}, nil
	}
}
