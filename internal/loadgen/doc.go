// Package loadgen генерирует синтетический трафик к собственному сервису.
//
// # Обзор
//
// Generator на каждый тик выбирает случайный маршрут из списка
// (по умолчанию "/", "/lento", "/erro") и выполняет GET через
// инструментированный HTTP клиент. Исходящий запрос порождает client span,
// а trace context передаётся сервису в заголовках, поэтому трафик
// генератора виден в трейсах как связанные пары client/server.
//
// Сам по себе Generator не запускает цикл. Периодичность задаёт
// scheduler.Periodic:
//
//	gen, err := loadgen.New(loadgen.Config{
//	    BaseURL: "http://localhost:8000",
//	    Logger:  logger,
//	})
//	p, err := scheduler.New(scheduler.Config{
//	    Name: "loadgen",
//	    Spec: "@every 1s",
//	    Task: gen.Tick,
//	})
//	go p.Run(ctx)
//
// # Исходы
//
// Каждый запрос учитывается в счётчиках playground_loadgen_requests_total
// (Prometheus) и loadgen.requests (OTel) с атрибутами route и outcome:
//
//   - success       — ответ 2xx
//   - http_error    — ответ не 2xx (ErrUnexpectedStatus)
//   - request_error — сетевая ошибка или таймаут (ErrRequest)
//
// Неудачи логируются на уровне WARN и не прерывают цикл.
package loadgen
