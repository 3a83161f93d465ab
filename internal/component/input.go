package component

import (
	"time"

	"swipe/internal/clock"
	"swipe/internal/ecs"

	"github.com/jakecoffman/cp"
)

// Input defaults.
const (
	DefaultKeySpeed        = 5.0
	DefaultCooldown        = 500 * time.Millisecond
	DefaultSpeedMultiplier = 40.0
	DefaultMaxTouch        = 1000 * time.Millisecond
)

// Direction is one of the four arrow directions.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// KeyState reports which direction keys are held this frame.
type KeyState interface {
	Held(d Direction) bool
}

// TouchState reports the pointer state for the current frame. Delta is
// the pointer movement since the previous frame in screen units, y down.
type TouchState interface {
	Touched() bool
	JustTouched() bool
	Delta() cp.Vector
}

// cooldown disables input until a deadline on the injected clock.
type cooldown struct {
	clock clock.Clock
	until time.Time
}

func (c *cooldown) start(d time.Duration) { c.until = c.clock.Now().Add(d) }

func (c *cooldown) active() bool { return c.clock.Now().Before(c.until) }

// KeyInput turns held arrow keys into a MessageMovement every frame.
type KeyInput struct {
	Speed    float64
	Cooldown time.Duration

	keys      KeyState
	cooldown  cooldown
	direction cp.Vector
}

// NewKeyInput creates a key input reading keys and timing its cooldown
// with clk.
func NewKeyInput(keys KeyState, clk clock.Clock) *KeyInput {
	return &KeyInput{
		Speed:    DefaultKeySpeed,
		Cooldown: DefaultCooldown,
		keys:     keys,
		cooldown: cooldown{clock: clk},
	}
}

func (*KeyInput) Type() ecs.ComponentType { return ecs.CInput }
func (*KeyInput) Phase() ecs.Phase        { return ecs.PhasePreUpdate }

// Direction returns the last direction sent.
func (k *KeyInput) Direction() cp.Vector { return k.direction }

// CoolingDown reports whether input is currently disabled.
func (k *KeyInput) CoolingDown() bool { return k.cooldown.active() }

func (k *KeyInput) Update(_ float64, owner *ecs.GameObject) error {
	if k.cooldown.active() {
		return nil
	}

	var dir cp.Vector
	switch {
	case k.keys.Held(DirLeft):
		dir.X = -1
	case k.keys.Held(DirRight):
		dir.X = 1
	}
	switch {
	case k.keys.Held(DirUp):
		dir.Y = 1
	case k.keys.Held(DirDown):
		dir.Y = -1
	}
	k.direction = dir.Mult(k.Speed)

	owner.SendMessage(MessageMovement, k.direction)
	return nil
}

func (k *KeyInput) Receive(msg ecs.Message, _ any) {
	if msg == MessageBlockadeCollision {
		k.cooldown.start(k.Cooldown)
	}
}

// TouchInput turns pointer drags into a MessageMovement. The speed is the
// drag distance scaled by SpeedMultiplier over the time since the touch
// began, so quick swipes are fast and slow drags are slow.
type TouchInput struct {
	SpeedMultiplier float64
	MaxTouch        time.Duration
	Cooldown        time.Duration

	touch      TouchState
	clock      clock.Clock
	cooldown   cooldown
	touchStart time.Time
	direction  cp.Vector
}

// NewTouchInput creates a touch input reading touch and timing with clk.
func NewTouchInput(touch TouchState, clk clock.Clock) *TouchInput {
	return &TouchInput{
		SpeedMultiplier: DefaultSpeedMultiplier,
		MaxTouch:        DefaultMaxTouch,
		Cooldown:        DefaultCooldown,
		touch:           touch,
		clock:           clk,
		cooldown:        cooldown{clock: clk},
	}
}

func (*TouchInput) Type() ecs.ComponentType { return ecs.CInput }
func (*TouchInput) Phase() ecs.Phase        { return ecs.PhasePreUpdate }

// Direction returns the last direction sent.
func (t *TouchInput) Direction() cp.Vector { return t.direction }

func (t *TouchInput) Update(_ float64, owner *ecs.GameObject) error {
	if t.cooldown.active() || !t.touch.Touched() {
		return nil
	}

	now := t.clock.Now()
	if t.touch.JustTouched() {
		// The first sample still carries the previous touch's delta.
		t.touchStart = now
		return nil
	}

	elapsed := now.Sub(t.touchStart)
	if elapsed >= t.MaxTouch || elapsed <= 0 {
		return nil
	}

	ms := float64(elapsed) / float64(time.Millisecond)
	d := t.touch.Delta().Mult(t.SpeedMultiplier / ms)
	t.direction = cp.Vector{X: d.X, Y: -d.Y}

	owner.SendMessage(MessageMovement, t.direction)
	return nil
}

func (t *TouchInput) Receive(msg ecs.Message, _ any) {
	if msg == MessageBlockadeCollision {
		t.cooldown.start(t.Cooldown)
	}
}
