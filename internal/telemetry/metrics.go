package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shaiso/telemetry-playground/internal/domain"
)

// Prometheus метрики, доступные на /metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playground_http_requests_total",
		Help: "Total HTTP requests handled, by route and status code",
	}, []string{"service", "route", "method", "code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "playground_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
	}, []string{"service", "route", "method"})

	LoadgenRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playground_loadgen_requests_total",
		Help: "Synthetic requests issued by the load generator, by route and outcome",
	}, []string{"route", "outcome"})
)

// LocationSource — источник положения дрона для метрик.
type LocationSource interface {
	Snapshot() domain.Location
	Updates() uint64
}

// NewLocationCollectors создаёт коллекторы, читающие положение дрона при scrape.
func NewLocationCollectors(src LocationSource) []prometheus.Collector {
	return []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "dronetracks_location_updates_total",
			Help: "Number of simulated drone movements",
		}, func() float64 { return float64(src.Updates()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "dronetracks_location_latitude",
			Help: "Current simulated drone latitude",
		}, func() float64 { return src.Snapshot().Latitude }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "dronetracks_location_longitude",
			Help: "Current simulated drone longitude",
		}, func() float64 { return src.Snapshot().Longitude }),
	}
}

// RegisterLocationMetrics регистрирует коллекторы положения дрона.
func RegisterLocationMetrics(reg prometheus.Registerer, src LocationSource) error {
	for _, c := range NewLocationCollectors(src) {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
