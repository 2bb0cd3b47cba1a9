package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// chain — middleware для маршрутов сервиса.
//
// Tracing внешний, чтобы span охватывал весь запрос; Recovery внутренний,
// чтобы Logging и Metrics видели 500 после паники.
func (h *Handler) chain() Middleware {
	return Chain(
		Tracing(h.tracerProvider),
		RequestID(h.logger),
		Logging(h.accessLogger),
		Metrics(h.serviceName),
		Recovery(h.logger),
	)
}

// RegisterAppRoutes регистрирует маршруты playground-app.
func (h *Handler) RegisterAppRoutes(mux *http.ServeMux) {
	chain := h.chain()

	mux.Handle("GET /{$}", chain(h.handle(h.Index)))
	mux.Handle("GET /erro", chain(h.handle(h.Erro)))
	mux.Handle("GET /lento", chain(h.handle(h.Lento)))

	h.registerCommonRoutes(mux)
}

// RegisterDroneRoutes регистрирует маршруты dronetracks.
func (h *Handler) RegisterDroneRoutes(mux *http.ServeMux) {
	chain := h.chain()

	mux.Handle("GET /location", chain(h.handle(h.Location)))

	h.registerCommonRoutes(mux)
}

// Health и metrics
func (h *Handler) registerCommonRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.Handle("GET /metrics", promhttp.Handler())
}
