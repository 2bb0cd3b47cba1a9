package api

import "errors"

// Ошибки API.
var (
	// ErrSimulated — намеренная ошибка маршрута /erro.
	ErrSimulated = errors.New("simulated error")

	// ErrNoLocation — обработчик создан без состояния положения дрона.
	ErrNoLocation = errors.New("location state is not configured")
)
