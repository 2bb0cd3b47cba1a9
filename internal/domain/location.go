package domain

import (
	"context"
	"sync"
)

// Location — координаты дрона.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationState — текущее положение дрона.
//
// Один писатель (Advance) и произвольное число читателей (Snapshot).
// Пара координат меняется под одной блокировкой, поэтому читатель
// никогда не видит latitude и longitude от разных обновлений.
type LocationState struct {
	mu      sync.RWMutex
	current Location
	step    float64
	updates uint64
}

// NewLocationState создаёт состояние с начальной точкой и шагом смещения.
func NewLocationState(initial Location, step float64) *LocationState {
	return &LocationState{
		current: initial,
		step:    step,
	}
}

// Advance сдвигает обе координаты на шаг и возвращает новое положение.
func (s *LocationState) Advance() Location {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.Latitude += s.step
	s.current.Longitude += s.step
	s.updates++

	return s.current
}

// Snapshot возвращает копию текущего положения.
func (s *LocationState) Snapshot() Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Updates возвращает количество выполненных обновлений.
func (s *LocationState) Updates() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updates
}

// Step возвращает шаг смещения.
func (s *LocationState) Step() float64 {
	return s.step
}

// AdvanceTask адаптирует Advance к периодической задаче.
func (s *LocationState) AdvanceTask(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Advance()
	return nil
}
