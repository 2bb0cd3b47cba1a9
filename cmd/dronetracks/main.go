// dronetracks — демонстрационный HTTP сервис с симуляцией движения дрона.
//
// GET /location отдаёт текущие координаты; фоновая задача раз в секунду
// сдвигает обе координаты на фиксированный шаг. Координаты также
// доступны как Prometheus метрики на /metrics.
//
// Использование:
//
//	dronetracks [--host HOST] [--port PORT]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/shaiso/telemetry-playground/internal/api"
	"github.com/shaiso/telemetry-playground/internal/app"
	"github.com/shaiso/telemetry-playground/internal/config"
	"github.com/shaiso/telemetry-playground/internal/domain"
	"github.com/shaiso/telemetry-playground/internal/telemetry"
)

const (
	serviceName = "dronetracks"
	defaultPort = 5100
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var (
		host string
		port int
	)

	rootCmd := &cobra.Command{
		Use:           serviceName,
		Short:         "Telemetry playground service simulating a moving drone",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.Default(serviceName, defaultPort))
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("host") {
				cfg.HTTP.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.HTTP.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Дрон стартует из (0, 0)
			state := domain.NewLocationState(domain.Location{}, cfg.Location.Step)
			if err := telemetry.RegisterLocationMetrics(prometheus.DefaultRegisterer, state); err != nil {
				return fmt.Errorf("register location metrics: %w", err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return app.Run(ctx, app.Service{
				Config:   cfg,
				Location: state,
				Routes:   (*api.Handler).RegisterDroneRoutes,
				Tasks:    app.LocationTasks(state),
			})
		},
	}

	rootCmd.Flags().StringVar(&host, "host", config.DefaultHost, "Listen host")
	rootCmd.Flags().IntVar(&port, "port", defaultPort, "Listen port")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
