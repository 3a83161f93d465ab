package component

import (
	"swipe/internal/ecs"
	"swipe/internal/physics"

	"github.com/jakecoffman/cp"
)

// PlayerPhysics is a dynamic body steered by MessageMovement.
type PlayerPhysics struct {
	*Physics

	// MovementForce scales the movement direction into a force.
	MovementForce float64
	// MaxSpeed caps the body's speed; zero disables the cap.
	MaxSpeed float64

	movement cp.Vector
}

// NewPlayerPhysics creates the player's body from shape and fixture.
func NewPlayerPhysics(shape *physics.Shape, fixture physics.FixtureDef, force, maxSpeed float64) *PlayerPhysics {
	return &PlayerPhysics{
		Physics:       NewDynamicPhysics(shape, fixture),
		MovementForce: force,
		MaxSpeed:      maxSpeed,
	}
}

func (p *PlayerPhysics) Receive(msg ecs.Message, payload any) {
	if msg != MessageMovement {
		return
	}
	if dir, ok := payload.(cp.Vector); ok {
		p.movement = dir
	}
}

// Update applies the pending movement as a force, caps the speed and then
// pulls the object's position from the body.
func (p *PlayerPhysics) Update(dt float64, owner *ecs.GameObject) error {
	body, err := p.Body()
	if err != nil {
		return err
	}
	if p.movement != (cp.Vector{}) {
		body.ApplyForce(p.movement.Mult(p.MovementForce))
		p.movement = cp.Vector{}
	}
	if p.MaxSpeed > 0 {
		if v := body.LinearVelocity(); v.Length() > p.MaxSpeed {
			body.SetLinearVelocity(v.Normalize().Mult(p.MaxSpeed))
		}
	}
	return p.Physics.Update(dt, owner)
}
