// playground-app — демонстрационный HTTP сервис, отправляющий трейсы,
// метрики и логи в OpenTelemetry collector.
//
// Маршруты: / (короткая задержка), /erro (всегда 500), /lento (задержка 1-3 s),
// а также /healthz и /metrics. Встроенный генератор раз в секунду
// запрашивает случайный маршрут этого же сервиса.
//
// Использование:
//
//	playground-app [--host HOST] [--port PORT]
//
// Остальные параметры задаются переменными окружения или YAML-файлом
// из CONFIG_FILE.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaiso/telemetry-playground/internal/api"
	"github.com/shaiso/telemetry-playground/internal/app"
	"github.com/shaiso/telemetry-playground/internal/config"
)

const (
	serviceName = "playground-app"
	defaultPort = 8000
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
		Short:         "Telemetry playground HTTP service with a built-in load generator",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.Default(serviceName, defaultPort))
			if err != nil {
				return err
			}

			// Флаги важнее окружения
			if cmd.Flags().Changed("host") {
				cfg.HTTP.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.HTTP.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return app.Run(ctx, app.Service{
				Config: cfg,
				Routes: (*api.Handler).RegisterAppRoutes,
				Tasks:  app.LoadgenTasks,
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
