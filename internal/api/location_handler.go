package api

import (
	"fmt"
	"net/http"
	"time"
)

// Location — GET /location: текущее положение дрона.
func (h *Handler) Location(w http.ResponseWriter, r *http.Request) error {
	if h.location == nil {
		return ErrNoLocation
	}

	JSON(w, http.StatusOK, toLocationResponse(h.location.Snapshot()))
	return nil
}

// Healthz — GET /healthz: liveness и время работы процесса.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	Text(w, http.StatusOK, fmt.Sprintf("ok %s", time.Since(h.startTime).Round(time.Millisecond)))
}
