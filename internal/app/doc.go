// Package app собирает сервис из пакетов telemetry, api и scheduler.
//
// Оба бинарника (playground-app и dronetracks) запускаются одинаково:
//
//	err := app.Run(ctx, app.Service{
//	    Config: cfg,
//	    Routes: (*api.Handler).RegisterAppRoutes,
//	    Tasks:  loadgenTasks,
//	})
//
// Run блокируется, пока не отменён ctx (SIGINT/SIGTERM) или пока
// HTTP сервер не завершился с ошибкой, например из-за занятого порта.
// Фоновые задачи останавливаются вместе с сервером.
package app
