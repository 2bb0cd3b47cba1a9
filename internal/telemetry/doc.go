// Package telemetry обеспечивает наблюдаемость сервисов.
//
// Включает:
//   - otel.go       — провайдеры OpenTelemetry (трейсы, метрики, логи) и экспорт по OTLP/HTTP
//   - logging.go    — structured logging через slog с мостом в OTel
//   - handler.go    — fan-out slog обработчик и добавление trace_id в логи
//   - httpclient.go — инструментированный HTTP клиент
//   - metrics.go    — Prometheus метрики
//
// Все сервисы используют единый формат логирования,
// экспортируют телеметрию в collector и метрики на /metrics endpoint.
package telemetry
