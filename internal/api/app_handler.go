package api

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Имена span'ов маршрутов playground-app.
const (
	SpanProcessRequest  = "process_request"
	SpanErrorSimulation = "error_simulation"
	SpanSlowRequest     = "slow_request"
)

const (
	// Greeting — тело ответа GET /.
	Greeting = "Hello Observabilidade!"

	// SimulatedErrorMessage — сообщение ошибки GET /erro.
	SimulatedErrorMessage = "Erro simulado!"

	// SlowResponseMessage — сообщение ответа GET /lento.
	SlowResponseMessage = "Resposta lenta"

	spanErrorStatus = "Erro simulado"
)

// Index — GET /: короткая случайная задержка [0.1, 0.5) s.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	h.log(ctx).InfoContext(ctx, "root endpoint accessed")

	ctx, span := h.tracer.Start(ctx, SpanProcessRequest,
		trace.WithAttributes(h.spanAttributes(http.StatusOK, "index")...),
	)
	err := h.sleep(ctx, seconds(h.uniform(0.1, 0.5)))
	endSpan(span, err)
	if err != nil {
		return err
	}

	Text(w, http.StatusOK, Greeting)
	return nil
}

// Erro — GET /erro: всегда завершается ошибкой.
// Span помечается ERROR до того, как ошибка вернётся наверх.
func (h *Handler) Erro(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	h.log(ctx).WarnContext(ctx, "simulating error")

	_, span := h.tracer.Start(ctx, SpanErrorSimulation,
		trace.WithAttributes(h.spanAttributes(http.StatusInternalServerError, "erro")...),
	)
	defer span.End()

	span.SetStatus(codes.Error, spanErrorStatus)
	span.RecordError(ErrSimulated)

	return ErrSimulated
}

// Lento — GET /lento: задержка [1, 3) s, возвращает выбранную задержку.
func (h *Handler) Lento(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	delay := h.uniform(1, 3)
	h.log(ctx).InfoContext(ctx, fmt.Sprintf("simulating latency of %.2fs", delay), "delay", delay)

	ctx, span := h.tracer.Start(ctx, SpanSlowRequest,
		trace.WithAttributes(h.spanAttributes(http.StatusOK, "lento")...),
	)
	err := h.sleep(ctx, seconds(delay))
	endSpan(span, err)
	if err != nil {
		return err
	}

	JSON(w, http.StatusOK, LentoResponse{
		Message: SlowResponseMessage,
		Delay:   delay,
	})
	return nil
}

func (h *Handler) spanAttributes(status int, name string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("http.status_code", status),
		attribute.String("name", name),
		attribute.String("service.name", h.serviceName),
	}
}

// endSpan завершает span, отмечая ошибку (например, отмену запроса).
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
