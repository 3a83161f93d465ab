package factory

import (
	"swipe/assets"
	"swipe/internal/clock"
	"swipe/internal/component"
	"swipe/internal/config"
	"swipe/internal/ecs"
	"swipe/internal/physics"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
)

// Tags classifying the game's objects.
const (
	TagPlayer ecs.Tag = 1 << iota
	TagBlockade
	TagDestructible
	TagPathGroup
)

const (
	// BlockadeHealth is the health of a fresh blockade.
	BlockadeHealth = 100.0
	// DamagePerVelocity scales the other body's impact speed into damage.
	DamagePerVelocity = 2.0
	// ExplosionDelay is the time each explosion frame stays on screen.
	ExplosionDelay = 1.0 / 15
	// ExplosionRise is how far an exploding crate drifts up.
	ExplosionRise = 1.0
)

// InputSource supplies the state for the player's input component. Only
// the one matching the configured mode is used.
type InputSource struct {
	Keys  component.KeyState
	Touch component.TouchState
}

// NewPlayer creates the player at the configured start position. Its input
// component times cooldowns with clk.
func NewPlayer(p config.Player, in config.Input, src InputSource, clk clock.Clock) *ecs.GameObject {
	obj := ecs.NewGameObject("player")
	obj.AddTag(TagPlayer)
	obj.Position = cp.Vector{X: p.Start.X, Y: p.Start.Y}
	obj.Size = ecs.Size{Width: p.Size, Height: p.Size}
	obj.Anchor = cp.Vector{X: p.Anchor, Y: p.Anchor}

	obj.MustAttach(newInput(in, src, clk))

	phys := component.NewPlayerPhysics(
		physics.NewCircle(p.Radius),
		physics.FixtureDef{Density: p.Density},
		p.MovementForce, p.MaxSpeed,
	)
	phys.AddContactListener(CollisionResponse{})
	obj.MustAttach(phys)
	obj.MustAttach(component.NewSprite(assets.SpritePlayer))
	return obj
}

func newInput(in config.Input, src InputSource, clk clock.Clock) ecs.Component {
	if in.Mode == config.InputTouch && src.Touch != nil {
		t := component.NewTouchInput(src.Touch, clk)
		t.SpeedMultiplier = in.TouchSpeedMultiplier
		t.MaxTouch = in.MaxTouch
		t.Cooldown = in.Cooldown
		return t
	}
	k := component.NewKeyInput(src.Keys, clk)
	k.Speed = in.KeySpeed
	k.Cooldown = in.Cooldown
	return k
}

// NewBlockade creates a static obstacle at pos that loses health when hit
// and disappears once it runs out.
func NewBlockade(pos cp.Vector) *ecs.GameObject {
	obj := ecs.NewGameObject("blockade")
	obj.AddTag(TagBlockade)
	obj.Position = pos
	obj.Size = ecs.Size{Width: 2, Height: 2}
	obj.Anchor = cp.Vector{X: 0.5, Y: 0.5}

	phys := component.NewStaticPhysics(physics.NewBox(1, 1))
	phys.AddContactListener(ImpactDamage{PerVelocity: DamagePerVelocity})
	obj.MustAttach(phys)

	health := component.NewHealth(BlockadeHealth)
	obj.MustAttach(health)
	sprite := component.NewSprite(assets.SpriteBlockade)
	sprite.AddParams(&component.DamageTint{Health: health, Below: 0.5, Color: tcell.ColorDarkRed})
	obj.MustAttach(sprite)
	return obj
}

// NewDestructible creates a sensor crate at pos that explodes when
// touched and is removed once the explosion has played.
func NewDestructible(pos cp.Vector) *ecs.GameObject {
	obj := ecs.NewGameObject("destructible")
	obj.AddTag(TagDestructible)
	obj.Position = pos
	obj.Size = ecs.Size{Width: 3, Height: 3}
	obj.Anchor = cp.Vector{X: 0.5, Y: 0.5}

	phys := component.NewStaticPhysics(physics.NewBox(1.5, 1.5))
	phys.OnInit = func(body *physics.Body) {
		body.Fixtures()[0].SetSensor(true)
	}
	phys.AddContactListener(&Explosion{})
	obj.MustAttach(phys)
	obj.MustAttach(component.NewSprite(assets.SpriteDestructible))
	return obj
}

// NewPathGroup creates the container that holds the obstacles of the course.
func NewPathGroup() *ecs.GameObject {
	obj := ecs.NewGameObject("path")
	obj.AddTag(TagPathGroup)
	return obj
}

// NewObstacle creates the obstacle described by o, or nil for an unknown
// kind.
func NewObstacle(o config.Obstacle, offsetX float64) *ecs.GameObject {
	pos := cp.Vector{X: o.X + offsetX, Y: o.Y}
	switch o.Kind {
	case config.KindBlockade:
		return NewBlockade(pos)
	case config.KindDestructible:
		return NewDestructible(pos)
	}
	return nil
}

// CullBehind requests removal of every child of group whose X position is
// below limit. It returns the number of children culled.
func CullBehind(group *ecs.GameObject, limit float64) int {
	n := 0
	for _, c := range group.Children() {
		if c.Position.X < limit && !c.ShouldRemove() {
			c.RequestRemoval()
			n++
		}
	}
	return n
}

// CollisionResponse tells the player's components about collisions with
// blockades.
type CollisionResponse struct{}

func (CollisionResponse) OnContactBegin(c component.Contact) {
	if c.Other.HasTag(TagBlockade) {
		c.Self.SendMessage(component.MessageBlockadeCollision, nil)
	}
}

func (CollisionResponse) OnContactEnd(component.Contact) {}

// ImpactDamage damages its object in proportion to the speed of whatever
// hits it.
type ImpactDamage struct {
	PerVelocity float64
}

func (d ImpactDamage) OnContactBegin(c component.Contact) {
	c.Self.SendMessage(component.MessageDamage, d.PerVelocity*c.OtherVelocity.Length())
}

func (ImpactDamage) OnContactEnd(component.Contact) {}

// Explosion replaces its object's sprite with a one-shot explosion the
// first time something touches it.
type Explosion struct {
	triggered bool
}

func (e *Explosion) OnContactBegin(c component.Contact) {
	if e.triggered {
		return
	}
	e.triggered = true

	obj := c.Self
	obj.Size = ecs.Size{Width: 3, Height: 2.789}
	if _, err := obj.Detach(ecs.CRender); err != nil {
		return
	}
	frames := make([]string, assets.ExplosionFrames)
	for i := range frames {
		frames[i] = assets.ExplosionFrame(i)
	}
	anim := component.NewAnimateOnce(ExplosionDelay, frames...)
	anim.OnFinish = (*ecs.GameObject).RequestRemoval
	anim.AddParams(&component.Tint{Color: tcell.ColorOrange})
	obj.MustAttach(anim)

	rise := obj.Position.Add(cp.Vector{Y: ExplosionRise})
	obj.RunAction(ecs.NewMoveTo(rise, ExplosionDelay*float64(len(frames))))
}

func (*Explosion) OnContactEnd(component.Contact) {}

// Triggered reports whether the explosion has started.
func (e *Explosion) Triggered() bool { return e.triggered }
