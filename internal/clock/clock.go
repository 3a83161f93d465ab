// Package clock supplies time to components that need it, so frame logic
// never reads the wall clock directly.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Real reads the system monotonic clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Sim is simulated game time, advanced once per frame by the frame delta.
type Sim struct {
	now time.Time
}

// NewSim creates a simulated clock starting at start.
func NewSim(start time.Time) *Sim {
	return &Sim{now: start}
}

func (s *Sim) Now() time.Time { return s.now }

// Advance moves the clock forward by dt seconds.
func (s *Sim) Advance(dt float64) {
	s.now = s.now.Add(time.Duration(dt * float64(time.Second)))
}

// Mock is a controllable clock for tests.
type Mock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMock creates a mock clock with the given start time.
func NewMock(start time.Time) *Mock {
	return &Mock{currentTime: start}
}

func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Set sets the current time.
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves the clock forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
