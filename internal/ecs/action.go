package ecs

import "github.com/jakecoffman/cp"

// Action is a time-driven mutator run on one object at a time.
type Action interface {
	Start(target *GameObject)
	Update(dt float64)
	Finished() bool
}

// MoveTo tweens the target's position linearly to a destination.
type MoveTo struct {
	To       cp.Vector
	Duration float64

	target  *GameObject
	from    cp.Vector
	elapsed float64
}

// NewMoveTo returns an action moving its target to `to` over duration seconds.
func NewMoveTo(to cp.Vector, duration float64) *MoveTo {
	return &MoveTo{To: to, Duration: duration}
}

func (a *MoveTo) Start(target *GameObject) {
	a.target = target
	a.from = target.Position
	a.elapsed = 0
}

func (a *MoveTo) Update(dt float64) {
	if a.target == nil || a.Finished() {
		return
	}
	a.elapsed += dt
	t := 1.0
	if a.Duration > 0 && a.elapsed < a.Duration {
		t = a.elapsed / a.Duration
	}
	a.target.Position = a.from.Lerp(a.To, t)
}

func (a *MoveTo) Finished() bool {
	return a.target != nil && a.elapsed >= a.Duration
}

// Delay finishes after the given number of seconds and does nothing else.
type Delay struct {
	Duration float64
	elapsed  float64
}

func NewDelay(duration float64) *Delay { return &Delay{Duration: duration} }

func (a *Delay) Start(*GameObject) { a.elapsed = 0 }

func (a *Delay) Update(dt float64) { a.elapsed += dt }

func (a *Delay) Finished() bool { return a.elapsed >= a.Duration }

// Sequence runs actions one after another.
type Sequence struct {
	actions []Action
	target  *GameObject
	index   int
}

func NewSequence(actions ...Action) *Sequence {
	return &Sequence{actions: actions}
}

func (s *Sequence) Start(target *GameObject) {
	s.target = target
	s.index = 0
	if len(s.actions) > 0 {
		s.actions[0].Start(target)
	}
}

func (s *Sequence) Update(dt float64) {
	if s.Finished() {
		return
	}
	cur := s.actions[s.index]
	cur.Update(dt)
	if cur.Finished() {
		s.index++
		if s.index < len(s.actions) {
			s.actions[s.index].Start(s.target)
		}
	}
}

func (s *Sequence) Finished() bool { return s.index >= len(s.actions) }
