package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// BodyType selects how the simulation treats a body.
type BodyType uint8

const (
	StaticBody BodyType = iota
	KinematicBody
	DynamicBody
)

func (t BodyType) String() string {
	switch t {
	case StaticBody:
		return "static"
	case KinematicBody:
		return "kinematic"
	case DynamicBody:
		return "dynamic"
	}
	return "unknown"
}

// BodyDef holds the initial state of a body.
type BodyDef struct {
	Type           BodyType
	Position       cp.Vector
	Angle          float64 // radians
	LinearVelocity cp.Vector
	FixedRotation  bool
}

// FixtureDef holds the material of a fixture. Density is mass per unit area.
type FixtureDef struct {
	Density    float64
	Friction   float64
	Elasticity float64
	Sensor     bool
}

// Body is a rigid body owned by a World.
type Body struct {
	// UserData is left for the body's owner; the world never reads it.
	UserData any

	world     *World
	body      *cp.Body
	kind      BodyType
	fixed     bool
	fixtures  []*Fixture
	mass      float64
	moment    float64
	destroyed bool
}

func (b *Body) Type() BodyType { return b.kind }

// World returns the world that created the body.
func (b *Body) World() *World { return b.world }

// Destroyed reports whether the body has been released from its world.
func (b *Body) Destroyed() bool { return b.destroyed }

func (b *Body) Position() cp.Vector { return b.body.Position() }

// Angle returns the rotation in radians.
func (b *Body) Angle() float64 { return b.body.Angle() }

// SetTransform teleports the body.
func (b *Body) SetTransform(pos cp.Vector, angle float64) {
	b.body.SetPosition(pos)
	b.body.SetAngle(angle)
}

func (b *Body) LinearVelocity() cp.Vector { return b.body.Velocity() }

func (b *Body) SetLinearVelocity(v cp.Vector) {
	if b.kind == StaticBody {
		return
	}
	b.body.SetVelocityVector(v)
}

// ApplyForce applies f at the centre of mass until the next step.
func (b *Body) ApplyForce(f cp.Vector) {
	if b.kind != DynamicBody {
		return
	}
	b.body.ApplyForceAtWorldPoint(f, b.body.Position())
}

// ApplyLinearImpulse changes the velocity immediately.
func (b *Body) ApplyLinearImpulse(impulse cp.Vector) {
	if b.kind != DynamicBody {
		return
	}
	b.body.ApplyImpulseAtWorldPoint(impulse, b.body.Position())
}

// Mass returns the accumulated fixture mass. Static and kinematic bodies
// report zero.
func (b *Body) Mass() float64 { return b.mass }

// Fixtures returns the body's fixtures in creation order.
func (b *Body) Fixtures() []*Fixture { return b.fixtures }

func (b *Body) addMass(shape *Shape, density float64) {
	if b.kind != DynamicBody || density <= 0 {
		return
	}
	m := density * shape.area()
	var i float64
	switch shape.kind {
	case ShapeCircle:
		i = cp.MomentForCircle(m, 0, shape.radius, cp.Vector{})
	default:
		i = cp.MomentForBox(m, 2*shape.halfWidth, 2*shape.halfHeight)
	}
	b.mass += m
	b.moment += i
	b.body.SetMass(b.mass)
	if b.fixed {
		b.body.SetMoment(math.Inf(1))
	} else {
		b.body.SetMoment(b.moment)
	}
}

// Fixture attaches collision geometry to a body.
type Fixture struct {
	body  *Body
	shape *cp.Shape
}

func (f *Fixture) Body() *Body { return f.body }

func (f *Fixture) IsSensor() bool { return f.shape.Sensor() }

// SetSensor makes the fixture report contacts without colliding.
func (f *Fixture) SetSensor(sensor bool) { f.shape.SetSensor(sensor) }
