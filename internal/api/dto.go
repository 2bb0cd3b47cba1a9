package api

import "github.com/shaiso/telemetry-playground/internal/domain"

// LentoResponse — ответ GET /lento.
type LentoResponse struct {
	Message string  `json:"message"`
	Delay   float64 `json:"delay"` // секунды
}

// LocationResponse — ответ GET /location.
type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func toLocationResponse(loc domain.Location) LocationResponse {
	return LocationResponse{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}
}
