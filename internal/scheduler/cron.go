package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser — парсер cron-выражений и дескрипторов (@every, @hourly).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSchedule разбирает расписание периодической задачи.
//
// Поддерживаются стандартные 5-польные cron-выражения и дескрипторы
// вида "@every 1s". Интервал @every разбирается здесь, а не в cron:
// cron округляет его до целых секунд (не меньше 1s). Интервал
// отсчитывается от конца тика, без выравнивания на границу секунды.
func ParseSchedule(spec string) (cron.Schedule, error) {
	if rest, ok := strings.CutPrefix(strings.TrimSpace(spec), everyPrefix); ok {
		d, err := time.ParseDuration(strings.TrimSpace(rest))
		if err != nil {
			return nil, fmt.Errorf("%w: parse %q: %v", ErrInvalidSchedule, spec, err)
		}
		return Every(d)
	}

	schedule, err := cronParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %q: %v", ErrInvalidSchedule, spec, err)
	}
	return schedule, nil
}

const everyPrefix = "@every "

// every — постоянный интервал без округления до секунды.
type every time.Duration

// Next возвращает момент через интервал после t.
func (e every) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

// Every создаёт расписание с постоянным интервалом.
func Every(d time.Duration) (cron.Schedule, error) {
	if d <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %s", ErrInvalidSchedule, d)
	}
	return every(d), nil
}
