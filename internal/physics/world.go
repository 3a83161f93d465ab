package physics

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var (
	ErrBodyDestroyed     = errors.New("physics: body already destroyed")
	ErrShapeDisposed     = errors.New("physics: shape already disposed")
	ErrWorldMismatch     = errors.New("physics: body belongs to another world")
	ErrWorldLocked       = errors.New("physics: world is stepping")
	ErrInvalidDensity    = errors.New("physics: dynamic fixture needs a positive density")
	ErrInvalidIterations = errors.New("physics: iteration counts must be positive")
)

// objectCollision is the collision type given to every shape so a single
// handler sees every pair.
const objectCollision cp.CollisionType = 1

// ContactListener receives raw contact events between bodies.
type ContactListener interface {
	BeginContact(a, b *Body)
	EndContact(a, b *Body)
}

// World owns a Chipmunk space and the bodies created in it.
type World struct {
	space    *cp.Space
	bodies   map[*Body]struct{}
	listener ContactListener
	stepping bool
}

// NewWorld creates a world with the given gravity. When allowSleep is set,
// idle bodies are put to sleep after half a second.
func NewWorld(gravity cp.Vector, allowSleep bool) *World {
	space := cp.NewSpace()
	space.SetGravity(gravity)
	if allowSleep {
		space.SleepTimeThreshold = 0.5
	}

	w := &World{
		space:  space,
		bodies: make(map[*Body]struct{}),
	}
	handler := space.NewCollisionHandler(objectCollision, objectCollision)
	handler.BeginFunc = w.begin
	handler.SeparateFunc = w.separate
	return w
}

// SetContactListener installs l as the receiver of contact events.
func (w *World) SetContactListener(l ContactListener) { w.listener = l }

// Gravity returns the world gravity.
func (w *World) Gravity() cp.Vector { return w.space.Gravity() }

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int { return len(w.bodies) }

// Contains reports whether b is a live body of this world.
func (w *World) Contains(b *Body) bool {
	_, ok := w.bodies[b]
	return ok
}

// CreateBody adds a body with no fixtures.
func (w *World) CreateBody(def BodyDef) (*Body, error) {
	if w.stepping {
		return nil, ErrWorldLocked
	}
	var cb *cp.Body
	switch def.Type {
	case StaticBody, KinematicBody:
		// Static bodies ride on zero-velocity kinematic bodies so that a
		// teleport moves their shapes in the broadphase on the next step.
		cb = cp.NewKinematicBody()
	default:
		cb = cp.NewBody(1, 1)
	}
	cb.SetPosition(def.Position)
	cb.SetAngle(def.Angle)

	b := &Body{world: w, body: cb, kind: def.Type, fixed: def.FixedRotation}
	cb.UserData = b
	w.space.AddBody(cb)
	if def.Type != StaticBody {
		cb.SetVelocityVector(def.LinearVelocity)
	}
	w.bodies[b] = struct{}{}
	return b, nil
}

// CreateFixture attaches shape to b. The shape descriptor stays owned by
// the caller, which must dispose it once it has no further fixtures to make.
func (w *World) CreateFixture(b *Body, shape *Shape, def FixtureDef) (*Fixture, error) {
	if err := w.checkBody(b); err != nil {
		return nil, err
	}
	if w.stepping {
		return nil, ErrWorldLocked
	}
	if shape.Disposed() {
		return nil, fmt.Errorf("create fixture from %v: %w", shape, ErrShapeDisposed)
	}
	if b.kind == DynamicBody && def.Density <= 0 {
		return nil, fmt.Errorf("create fixture from %v: %w", shape, ErrInvalidDensity)
	}

	var cs *cp.Shape
	switch shape.kind {
	case ShapeCircle:
		cs = cp.NewCircle(b.body, shape.radius, cp.Vector{})
	default:
		cs = cp.NewBox(b.body, 2*shape.halfWidth, 2*shape.halfHeight, 0)
	}
	cs.SetFriction(def.Friction)
	cs.SetElasticity(def.Elasticity)
	cs.SetSensor(def.Sensor)
	cs.SetCollisionType(objectCollision)
	w.space.AddShape(cs)

	f := &Fixture{body: b, shape: cs}
	b.fixtures = append(b.fixtures, f)
	b.addMass(shape, def.Density)
	return f, nil
}

// DestroyBody removes b and its fixtures from the world. Destroying a body
// twice fails with ErrBodyDestroyed.
func (w *World) DestroyBody(b *Body) error {
	if err := w.checkBody(b); err != nil {
		return err
	}
	if w.stepping {
		return ErrWorldLocked
	}
	for _, f := range b.fixtures {
		w.space.RemoveShape(f.shape)
	}
	w.space.RemoveBody(b.body)
	b.destroyed = true
	delete(w.bodies, b)
	return nil
}

// Step advances the simulation by dt seconds. Chipmunk uses a single
// solver iteration count, which is the sum of the two.
func (w *World) Step(dt float64, velocityIterations, positionIterations int) error {
	if velocityIterations <= 0 || positionIterations <= 0 {
		return ErrInvalidIterations
	}
	if w.stepping {
		return ErrWorldLocked
	}
	w.space.Iterations = uint(velocityIterations + positionIterations)
	w.stepping = true
	defer func() { w.stepping = false }()
	w.space.Step(dt)
	return nil
}

// Dispose destroys every remaining body.
func (w *World) Dispose() {
	for b := range w.bodies {
		_ = w.DestroyBody(b)
	}
}

func (w *World) checkBody(b *Body) error {
	if b.destroyed {
		return ErrBodyDestroyed
	}
	if b.world != w {
		return ErrWorldMismatch
	}
	return nil
}

func (w *World) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	if w.listener != nil {
		if a, b, ok := bodiesOf(arb); ok {
			w.listener.BeginContact(a, b)
		}
	}
	return true
}

func (w *World) separate(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	if w.listener != nil {
		if a, b, ok := bodiesOf(arb); ok {
			w.listener.EndContact(a, b)
		}
	}
}

func bodiesOf(arb *cp.Arbiter) (*Body, *Body, bool) {
	ca, cb := arb.Bodies()
	a, okA := ca.UserData.(*Body)
	b, okB := cb.UserData.(*Body)
	return a, b, okA && okB
}
