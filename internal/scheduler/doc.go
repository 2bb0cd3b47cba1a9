// Package scheduler запускает фоновые задачи по расписанию.
//
// Используется генератором нагрузки и симуляцией движения дрона.
//
// Структура:
//   - scheduler.go — Periodic (Tick, Run)
//   - cron.go      — разбор расписаний (cron-выражения, @every, постоянный интервал)
//
// Использование:
//
//	task, err := scheduler.New(scheduler.Config{
//	    Name:   "loadgen",
//	    Spec:   "@every 1s",
//	    Task:   gen.Tick,
//	    Logger: logger,
//	})
//	if err != nil {
//	    return err
//	}
//
//	// Блокируется до отмены ctx
//	task.Run(ctx)
//
// В тестах удобно вызывать Tick напрямую нужное число раз,
// не завязываясь на реальные часы.
package scheduler
