package component

import "swipe/internal/ecs"

// Animation cycles through frames, showing each for Delay seconds.
type Animation struct {
	renderBase
	Delay float64

	frames  []string
	index   int
	elapsed float64
}

func NewAnimation(delay float64, frames ...string) *Animation {
	return &Animation{Delay: delay, frames: frames}
}

func (a *Animation) Sprite() string {
	if len(a.frames) == 0 {
		return ""
	}
	return a.frames[a.index]
}

// Frame returns the index of the current frame.
func (a *Animation) Frame() int { return a.index }

func (a *Animation) Update(dt float64, _ *ecs.GameObject) error {
	if len(a.frames) == 0 {
		return nil
	}
	a.elapsed += dt
	for a.elapsed >= a.Delay {
		a.index = (a.index + 1) % len(a.frames)
		if a.Delay <= 0 {
			a.elapsed = 0
			break
		}
		a.elapsed -= a.Delay
	}
	return nil
}

// AnimateOnce plays frames a single time and then calls OnFinish with the
// owning object. The last frame stays on screen afterwards.
type AnimateOnce struct {
	renderBase
	Delay    float64
	OnFinish func(owner *ecs.GameObject)

	frames   []string
	index    int
	elapsed  float64
	finished bool
}

func NewAnimateOnce(delay float64, frames ...string) *AnimateOnce {
	return &AnimateOnce{Delay: delay, frames: frames}
}

func (a *AnimateOnce) Sprite() string {
	if len(a.frames) == 0 {
		return ""
	}
	return a.frames[a.index]
}

// Finished reports whether the last frame has been shown for its delay.
func (a *AnimateOnce) Finished() bool { return a.finished }

func (a *AnimateOnce) Update(dt float64, owner *ecs.GameObject) error {
	if a.finished {
		return nil
	}
	a.elapsed += dt
	for a.elapsed >= a.Delay {
		a.elapsed -= a.Delay
		if a.index+1 >= len(a.frames) {
			a.finished = true
			if a.OnFinish != nil {
				a.OnFinish(owner)
			}
			return nil
		}
		a.index++
		if a.Delay <= 0 {
			break
		}
	}
	return nil
}
