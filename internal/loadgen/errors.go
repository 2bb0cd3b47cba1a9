package loadgen

import "errors"

// Ошибки генератора нагрузки.
var (
	// ErrNoBaseURL — не задан адрес сервиса.
	ErrNoBaseURL = errors.New("base url is required")

	// ErrInvalidRoute — маршрут пустой или не начинается с "/".
	ErrInvalidRoute = errors.New("invalid route")

	// ErrRequest — запрос не выполнен (сеть, таймаут, чтение ответа).
	ErrRequest = errors.New("loadgen request failed")

	// ErrUnexpectedStatus — сервис ответил не 2xx.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)
