package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig — конфигурация не прошла валидацию.
var ErrInvalidConfig = errors.New("invalid config")

// Значения по умолчанию.
const (
	DefaultHost             = "0.0.0.0"
	DefaultCollectorURL     = "http://otel-collector:4318"
	DefaultMetricInterval   = 60 * time.Second
	DefaultSchedule         = "@every 1s"
	DefaultLoadgenTimeout   = 10 * time.Second
	DefaultLocationStep     = 0.001
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultTelemetryTimeout = 5 * time.Second
)

// Config — конфигурация сервиса.
//
// Источники применяются по порядку: значения по умолчанию,
// YAML-файл из CONFIG_FILE, переменные окружения, флаги командной строки.
type Config struct {
	ServiceName string    `yaml:"service_name" env:"OTEL_SERVICE_NAME"`
	HTTP        HTTP      `yaml:"http"`
	Logging     Logging   `yaml:"logging"`
	Telemetry   Telemetry `yaml:"telemetry"`
	Loadgen     Loadgen   `yaml:"loadgen"`
	Location    Location  `yaml:"location"`
}

// HTTP — параметры HTTP сервера.
type HTTP struct {
	Host            string        `yaml:"host" env:"HTTP_HOST"`
	Port            int           `yaml:"port" env:"HTTP_PORT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT"`
}

// Addr возвращает адрес для net.Listen.
func (h HTTP) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// Logging — параметры логирования.
type Logging struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`   // DEBUG, INFO, WARN, ERROR
	Format string `yaml:"format" env:"LOG_FORMAT"` // json, text
}

// Telemetry — параметры экспорта в OTel collector.
type Telemetry struct {
	Enabled         bool          `yaml:"enabled" env:"OTEL_ENABLED"`
	TracesEndpoint  string        `yaml:"traces_endpoint" env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"`
	MetricsEndpoint string        `yaml:"metrics_endpoint" env:"OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"`
	LogsEndpoint    string        `yaml:"logs_endpoint" env:"OTEL_EXPORTER_OTLP_LOGS_ENDPOINT"`
	MetricInterval  Interval      `yaml:"metric_interval" env:"OTEL_METRIC_EXPORT_INTERVAL"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"OTEL_SHUTDOWN_TIMEOUT"`
}

// Loadgen — параметры генератора синтетической нагрузки.
type Loadgen struct {
	Enabled  bool          `yaml:"enabled" env:"LOADGEN_ENABLED"`
	BaseURL  string        `yaml:"base_url" env:"LOADGEN_BASE_URL"` // пусто — http://localhost:<port>
	Schedule string        `yaml:"schedule" env:"LOADGEN_SCHEDULE"`
	Timeout  time.Duration `yaml:"timeout" env:"LOADGEN_TIMEOUT"`
}

// Location — параметры симуляции движения дрона.
type Location struct {
	Schedule string  `yaml:"schedule" env:"LOCATION_SCHEDULE"`
	Step     float64 `yaml:"step" env:"LOCATION_STEP"`
}

// Default возвращает конфигурацию по умолчанию для сервиса.
func Default(serviceName string, port int) Config {
	return Config{
		ServiceName: serviceName,
		HTTP: HTTP{
			Host:            DefaultHost,
			Port:            port,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Logging: Logging{
			Level:  "INFO",
			Format: "json",
		},
		Telemetry: Telemetry{
			Enabled:         true,
			TracesEndpoint:  DefaultCollectorURL + "/v1/traces",
			MetricsEndpoint: DefaultCollectorURL + "/v1/metrics",
			LogsEndpoint:    DefaultCollectorURL + "/v1/logs",
			MetricInterval:  Interval(DefaultMetricInterval),
			ShutdownTimeout: DefaultTelemetryTimeout,
		},
		Loadgen: Loadgen{
			Enabled:  true,
			Schedule: DefaultSchedule,
			Timeout:  DefaultLoadgenTimeout,
		},
		Location: Location{
			Schedule: DefaultSchedule,
			Step:     DefaultLocationStep,
		},
	}
}

// Load собирает конфигурацию поверх defaults.
//
// Если задан CONFIG_FILE, его содержимое накладывается на defaults,
// затем применяются переменные окружения. Незаданные переменные
// не затирают значения из файла.
func Load(defaults Config) (Config, error) {
	cfg := defaults

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

// Validate проверяет конфигурацию.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidConfig)
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: http port %d out of range", ErrInvalidConfig, c.HTTP.Port)
	}

	switch strings.ToUpper(c.Logging.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Logging.Format)
	}

	if c.Telemetry.Enabled {
		endpoints := map[string]string{
			"traces":  c.Telemetry.TracesEndpoint,
			"metrics": c.Telemetry.MetricsEndpoint,
			"logs":    c.Telemetry.LogsEndpoint,
		}
		for signal, endpoint := range endpoints {
			if err := validateURL(endpoint); err != nil {
				return fmt.Errorf("%w: %s endpoint: %v", ErrInvalidConfig, signal, err)
			}
		}
		if c.Telemetry.MetricInterval <= 0 {
			return fmt.Errorf("%w: metric interval must be positive", ErrInvalidConfig)
		}
	}

	if c.Loadgen.Timeout <= 0 {
		return fmt.Errorf("%w: loadgen timeout must be positive", ErrInvalidConfig)
	}
	if c.Loadgen.BaseURL != "" {
		if err := validateURL(c.Loadgen.BaseURL); err != nil {
			return fmt.Errorf("%w: loadgen base url: %v", ErrInvalidConfig, err)
		}
	}
	if c.Location.Step <= 0 {
		return fmt.Errorf("%w: location step must be positive", ErrInvalidConfig)
	}

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("host is required")
	}
	return nil
}
