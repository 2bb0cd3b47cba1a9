package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Ошибки планировщика.
var (
	// ErrInvalidSchedule — расписание не удалось разобрать.
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrNoTask — не задана функция задачи.
	ErrNoTask = errors.New("task is required")
)

// Task — одна итерация периодической задачи.
type Task func(ctx context.Context) error

// Periodic — фоновая задача, выполняемая по расписанию до отмены контекста.
//
// Следующий запуск вычисляется после завершения текущего тика,
// поэтому ошибка или долгий тик никогда не приводят к немедленному повтору.
type Periodic struct {
	name     string
	schedule cron.Schedule
	task     Task
	logger   *slog.Logger
	now      func() time.Time

	ticks    atomic.Uint64
	failures atomic.Uint64
}

// Config — конфигурация Periodic.
type Config struct {
	Name  string
	Spec  string        // cron-выражение или "@every 1s"
	Every time.Duration // альтернатива Spec
	Task  Task

	Logger *slog.Logger
	Now    func() time.Time // для тестов (default: time.Now)
}

// New создаёт новую периодическую задачу.
//
// Должен быть задан ровно один из Spec и Every.
func New(cfg Config) (*Periodic, error) {
	if cfg.Task == nil {
		return nil, ErrNoTask
	}

	var (
		schedule cron.Schedule
		err      error
	)
	switch {
	case cfg.Spec != "" && cfg.Every != 0:
		return nil, fmt.Errorf("%w: both spec and interval set", ErrInvalidSchedule)
	case cfg.Spec != "":
		schedule, err = ParseSchedule(cfg.Spec)
	default:
		schedule, err = Every(cfg.Every)
	}
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Periodic{
		name:     cfg.Name,
		schedule: schedule,
		task:     cfg.Task,
		logger:   logger.With("task", cfg.Name),
		now:      now,
	}, nil
}

// Tick выполняет одну итерацию задачи.
//
// Ошибка логируется и возвращается вызывающему; Run её игнорирует.
func (p *Periodic) Tick(ctx context.Context) error {
	defer p.ticks.Add(1)

	if err := p.task(ctx); err != nil {
		p.failures.Add(1)
		p.logger.Debug("periodic task tick failed", "error", err)
		return err
	}
	return nil
}

// Run выполняет задачу по расписанию, пока не отменён ctx.
func (p *Periodic) Run(ctx context.Context) {
	p.logger.Info("periodic task started")
	defer p.logger.Info("periodic task stopped", "ticks", p.Ticks())

	for {
		now := p.now()
		wait := p.schedule.Next(now).Sub(now)
		if wait < 0 {
			wait = 0
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		// Ошибка не прерывает цикл: следующий тик через полный период
		_ = p.Tick(ctx)
	}
}

// Name возвращает имя задачи.
func (p *Periodic) Name() string {
	return p.name
}

// Ticks возвращает количество выполненных тиков.
func (p *Periodic) Ticks() uint64 {
	return p.ticks.Load()
}

// Errors возвращает количество тиков, завершившихся ошибкой.
func (p *Periodic) Errors() uint64 {
	return p.failures.Load()
}
