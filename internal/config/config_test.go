package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load(Default("playground-app", 8000))

	require.NoError(t, err)
	assert.Equal(t, "playground-app", cfg.ServiceName)
	assert.Equal(t, "0.0.0.0:8000", cfg.HTTP.Addr())
	assert.Equal(t, "http://otel-collector:4318/v1/traces", cfg.Telemetry.TracesEndpoint)
	assert.Equal(t, "http://otel-collector:4318/v1/metrics", cfg.Telemetry.MetricsEndpoint)
	assert.Equal(t, "http://otel-collector:4318/v1/logs", cfg.Telemetry.LogsEndpoint)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "@every 1s", cfg.Loadgen.Schedule)
	assert.Equal(t, 10*time.Second, cfg.Loadgen.Timeout)
	assert.InDelta(t, 0.001, cfg.Location.Step, 1e-12)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("OTEL_SERVICE_NAME", "custom")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "http://localhost:4318/v1/traces")
	t.Setenv("LOADGEN_TIMEOUT", "2s")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load(Default("playground-app", 8000))

	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, "custom", cfg.ServiceName)
	assert.Equal(t, "http://localhost:4318/v1/traces", cfg.Telemetry.TracesEndpoint)
	// Не заданные переменные не трогают defaults
	assert.Equal(t, "http://otel-collector:4318/v1/logs", cfg.Telemetry.LogsEndpoint)
	assert.Equal(t, 2*time.Second, cfg.Loadgen.Timeout)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfigFile(t, `
service_name: from-file
http:
  port: 5200
logging:
  format: text
telemetry:
  enabled: false
location:
  step: 0.5
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_PORT", "5300")

	cfg, err := Load(Default("dronetracks", 5100))

	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.ServiceName)
	assert.Equal(t, 5300, cfg.HTTP.Port) // env сильнее файла
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.InDelta(t, 0.5, cfg.Location.Step, 1e-12)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host) // default сохранился
}

func TestLoad_MetricIntervalFormats(t *testing.T) {
	tests := map[string]time.Duration{
		"60000": 60 * time.Second, // стандартный формат OTel: миллисекунды
		"1500":  1500 * time.Millisecond,
		"30s":   30 * time.Second,
	}

	for raw, want := range tests {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", "")
			t.Setenv("OTEL_METRIC_EXPORT_INTERVAL", raw)

			cfg, err := Load(Default("playground-app", 8000))

			require.NoError(t, err)
			assert.Equal(t, want, cfg.Telemetry.MetricInterval.Duration())
		})
	}
}

func TestLoad_MetricIntervalFromFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeConfigFile(t, `
telemetry:
  metric_interval: 15s
`))

	cfg, err := Load(Default("playground-app", 8000))

	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Telemetry.MetricInterval.Duration())
	assert.Equal(t, DefaultMetricInterval, Default("svc", 8000).Telemetry.MetricInterval.Duration())
}

func TestLoad_MetricIntervalInvalid(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("OTEL_METRIC_EXPORT_INTERVAL", "soon")

	_, err := Load(Default("playground-app", 8000))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load(Default("dronetracks", 5100))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeConfigFile(t, "http: [unclosed"))

	_, err := Load(Default("dronetracks", 5100))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config yaml")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty service name", func(c *Config) { c.ServiceName = " " }},
		{"port zero", func(c *Config) { c.HTTP.Port = 0 }},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }},
		{"unknown level", func(c *Config) { c.Logging.Level = "TRACE" }},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }},
		{"relative traces endpoint", func(c *Config) { c.Telemetry.TracesEndpoint = "/v1/traces" }},
		{"grpc metrics endpoint", func(c *Config) { c.Telemetry.MetricsEndpoint = "grpc://collector:4317" }},
		{"zero metric interval", func(c *Config) { c.Telemetry.MetricInterval = 0 }},
		{"zero loadgen timeout", func(c *Config) { c.Loadgen.Timeout = 0 }},
		{"bad loadgen url", func(c *Config) { c.Loadgen.BaseURL = "localhost:8000" }},
		{"negative step", func(c *Config) { c.Location.Step = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("svc", 8000)
			tt.mutate(&cfg)

			err := cfg.Validate()

			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestValidate_DisabledTelemetrySkipsEndpoints(t *testing.T) {
	cfg := Default("svc", 8000)
	cfg.Telemetry.Enabled = false
	cfg.Telemetry.TracesEndpoint = ""

	assert.NoError(t, cfg.Validate())
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
