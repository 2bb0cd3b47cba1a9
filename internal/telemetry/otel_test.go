package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/shaiso/telemetry-playground/internal/config"
)

// fakeCollector принимает OTLP/HTTP запросы и запоминает пути.
type fakeCollector struct {
	mu    sync.Mutex
	paths map[string]int
}

func (c *fakeCollector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.paths[r.URL.Path]++
	c.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (c *fakeCollector) hits(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paths[path]
}

func restoreGlobals(t *testing.T) {
	t.Helper()
	tp := otel.GetTracerProvider()
	mp := otel.GetMeterProvider()
	lp := global.GetLoggerProvider()
	prop := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(mp)
		global.SetLoggerProvider(lp)
		otel.SetTextMapPropagator(prop)
	})
}

func telemetryConfig(baseURL string) config.Telemetry {
	return config.Telemetry{
		Enabled:         true,
		TracesEndpoint:  baseURL + "/v1/traces",
		MetricsEndpoint: baseURL + "/v1/metrics",
		LogsEndpoint:    baseURL + "/v1/logs",
		MetricInterval:  config.Interval(time.Hour),
	}
}

func TestSetup_RequiresServiceName(t *testing.T) {
	_, err := Setup(context.Background(), config.Telemetry{}, "", nil)
	assert.ErrorIs(t, err, ErrServiceName)
}

func TestSetup_DisabledIsNoop(t *testing.T) {
	restoreGlobals(t)
	before := otel.GetTracerProvider()

	p, err := Setup(context.Background(), config.Telemetry{Enabled: false}, "test-service", nil)

	require.NoError(t, err)
	assert.NotNil(t, p.TracerProvider)
	assert.NotNil(t, p.MeterProvider)
	assert.NotNil(t, p.LoggerProvider)
	assert.Same(t, before, otel.GetTracerProvider())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, p.Shutdown(ctx))
}

func TestSetup_UnreachableCollectorDoesNotFailStartup(t *testing.T) {
	restoreGlobals(t)

	// Неиспользуемый адрес: экспорт невозможен, но создание провайдеров не должно падать
	p, err := Setup(context.Background(), telemetryConfig("http://192.0.2.1:4318"), "test-service", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = p.Shutdown(ctx)
}

func TestSetup_ExportsAllSignalsOnShutdown(t *testing.T) {
	restoreGlobals(t)

	collector := &fakeCollector{paths: map[string]int{}}
	server := httptest.NewServer(collector)
	defer server.Close()

	p, err := Setup(context.Background(), telemetryConfig(server.URL), "test-service", nil)
	require.NoError(t, err)

	// Провайдеры зарегистрированы глобально
	assert.Same(t, p.TracerProvider, otel.GetTracerProvider())

	ctx := context.Background()
	_, span := otel.Tracer("test").Start(ctx, "export-me")
	span.End()

	counter, err := otel.Meter("test").Int64Counter("test.requests")
	require.NoError(t, err)
	counter.Add(ctx, 1)

	var rec log.Record
	rec.SetBody(log.StringValue("hello collector"))
	rec.SetSeverity(log.SeverityInfo)
	global.GetLoggerProvider().Logger("test").Emit(ctx, rec)

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(shutdownCtx))

	assert.Positive(t, collector.hits("/v1/traces"))
	assert.Positive(t, collector.hits("/v1/metrics"))
	assert.Positive(t, collector.hits("/v1/logs"))

	// Повторный Shutdown — no-op
	assert.NoError(t, p.Shutdown(shutdownCtx))
}

func TestNewResource_CarriesServiceName(t *testing.T) {
	res, err := NewResource(context.Background(), "dronetracks")
	require.NoError(t, err)

	value, ok := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, "dronetracks", value.AsString())
}
