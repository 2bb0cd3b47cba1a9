// Package api содержит HTTP API сервисов playground-app и dronetracks.
//
// Структура:
//   - handler.go          — Handler с DI (tracer provider, logger, состояние, random, sleep)
//   - routes.go           — регистрация маршрутов
//   - middleware.go       — middleware (tracing, request id, logging, metrics, recovery)
//   - response.go         — JSON-ответы и явное сопоставление ошибок со статусами
//   - dto.go              — Data Transfer Objects
//   - app_handler.go      — обработчики /, /erro, /lento
//   - location_handler.go — обработчики /location, /healthz
//   - server.go           — запуск и graceful shutdown HTTP сервера
//
// Обработчики маршрутов возвращают error; статус ответа определяет StatusFor.
package api
