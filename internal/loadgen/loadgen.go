package loadgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/shaiso/telemetry-playground/internal/telemetry"
)

const (
	// InstrumentationName — имя инструментирующей библиотеки для Meter.
	InstrumentationName = "github.com/shaiso/telemetry-playground/internal/loadgen"

	// DefaultTimeout — таймаут одного запроса.
	DefaultTimeout = 10 * time.Second
)

// Исходы запроса для метрик.
const (
	OutcomeSuccess      = "success"
	OutcomeHTTPError    = "http_error"
	OutcomeRequestError = "request_error"
)

// DefaultRoutes — маршруты playground-app, к которым идёт трафик.
var DefaultRoutes = []string{"/", "/lento", "/erro"}

// Generator выполняет один синтетический запрос на каждый вызов Tick.
type Generator struct {
	baseURL  string
	routes   []string
	client   *http.Client
	timeout  time.Duration
	logger   *slog.Logger
	pick     func(n int) int
	requests metric.Int64Counter
}

// Config — конфигурация генератора.
type Config struct {
	BaseURL string       // обязателен, например "http://localhost:8000"
	Routes  []string     // default: DefaultRoutes
	Client  *http.Client // default: telemetry.NewHTTPClient
	Timeout time.Duration
	Logger  *slog.Logger
	Meter   metric.Meter // default: глобальный MeterProvider

	// Rand возвращает число в [0, n); подменяется в тестах
	Rand func(n int) int
}

// New создаёт генератор.
func New(cfg Config) (*Generator, error) {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}

	routes := cfg.Routes
	if len(routes) == 0 {
		routes = DefaultRoutes
	}
	for _, route := range routes {
		if !strings.HasPrefix(route, "/") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRoute, route)
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := cfg.Client
	if client == nil {
		client = telemetry.NewHTTPClient(timeout)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pick := cfg.Rand
	if pick == nil {
		pick = rand.IntN
	}

	meter := cfg.Meter
	if meter == nil {
		meter = otel.Meter(InstrumentationName)
	}
	requests, err := meter.Int64Counter("loadgen.requests",
		metric.WithDescription("Synthetic requests issued by the load generator"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}

	return &Generator{
		baseURL:  baseURL,
		routes:   append([]string(nil), routes...),
		client:   client,
		timeout:  timeout,
		logger:   logger.With("component", "loadgen"),
		pick:     pick,
		requests: requests,
	}, nil
}

// Tick выполняет один запрос к случайному маршруту.
//
// Ошибка возвращается вызывающему (scheduler.Periodic считает её),
// но повторного запроса не делается.
func (g *Generator) Tick(ctx context.Context) error {
	route := g.routes[g.pick(len(g.routes))]

	err := g.get(ctx, route)
	outcome := outcomeOf(err)

	telemetry.LoadgenRequestsTotal.WithLabelValues(route, outcome).Inc()
	g.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
		attribute.String("outcome", outcome),
	))

	if err != nil {
		// Остановка сервиса, а не сбой
		if ctx.Err() == nil {
			g.logger.WarnContext(ctx, "failed to generate traffic", "route", route, "error", err)
		}
		return err
	}

	g.logger.DebugContext(ctx, "traffic generated", "route", route)
	return nil
}

// Routes возвращает копию списка маршрутов.
func (g *Generator) Routes() []string {
	return append([]string(nil), g.routes...)
}

func (g *Generator) get(ctx context.Context, route string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+route, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", ErrRequest, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer resp.Body.Close()

	// Тело дочитывается, чтобы соединение вернулось в пул
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("%w: read response: %w", ErrRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: GET %s: HTTP %d", ErrUnexpectedStatus, route, resp.StatusCode)
	}
	return nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrUnexpectedStatus):
		return OutcomeHTTPError
	default:
		return OutcomeRequestError
	}
}
