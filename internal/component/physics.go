package component

import (
	"errors"
	"fmt"
	"math"

	"swipe/internal/ecs"
	"swipe/internal/physics"

	"github.com/jakecoffman/cp"
)

var (
	ErrBodyNotInitialized     = errors.New("component: physics body not initialized")
	ErrBodyAlreadyInitialized = errors.New("component: physics body already initialized")
	ErrBodyDestroyed          = errors.New("component: physics body destroyed")
)

// Positioning selects which side of the object/body pair is authoritative.
type Positioning uint8

const (
	// ObjectToBody pushes the object's position into the body every frame.
	ObjectToBody Positioning = iota
	// BodyToObject pulls the object's position out of the simulated body.
	BodyToObject
)

func (p Positioning) String() string {
	if p == BodyToObject {
		return "body-to-object"
	}
	return "object-to-body"
}

// Contact is a collision between two objects as seen from Self. The
// velocities are sampled when the contact began.
type Contact struct {
	Self, Other   *ecs.GameObject
	SelfVelocity  cp.Vector
	OtherVelocity cp.Vector
}

// ContactListener is notified when the physics capability it is registered
// on starts or stops touching another object.
type ContactListener interface {
	OnContactBegin(c Contact)
	OnContactEnd(c Contact)
}

// PhysicsComponent is the capability stored under ecs.CPhysics.
type PhysicsComponent interface {
	ecs.Component
	Init(world *physics.World, owner *ecs.GameObject) error
	Destroy(world *physics.World) error
	Body() (*physics.Body, error)
	AddContactListener(l ContactListener)
	RemoveContactListener(l ContactListener) bool
	PostCollisionBegin(c Contact)
	PostCollisionEnd(c Contact)
}

type bodyState uint8

const (
	bodyUninitialized bodyState = iota
	bodyInitialized
	bodyDestroyed
)

// Physics owns one rigid body and keeps it in sync with its object.
type Physics struct {
	Positioning Positioning
	// OnInit, if set, runs once right after the body and its fixture
	// are created.
	OnInit func(body *physics.Body)

	def       physics.BodyDef
	shape     *physics.Shape
	fixture   physics.FixtureDef
	body      *physics.Body
	state     bodyState
	listeners []ContactListener
}

// NewPhysics creates a physics capability that will build its body from
// def, shape and fixture when the object joins a scene. The shape is
// disposed once the fixture exists.
func NewPhysics(def physics.BodyDef, shape *physics.Shape, fixture physics.FixtureDef, pos Positioning) *Physics {
	return &Physics{
		Positioning: pos,
		def:         def,
		shape:       shape,
		fixture:     fixture,
	}
}

// NewStaticPhysics creates an immovable body with zero density that
// follows its object.
func NewStaticPhysics(shape *physics.Shape) *Physics {
	return NewPhysics(physics.BodyDef{Type: physics.StaticBody}, shape, physics.FixtureDef{}, ObjectToBody)
}

// NewDynamicPhysics creates a simulated body that drives its object.
func NewDynamicPhysics(shape *physics.Shape, fixture physics.FixtureDef) *Physics {
	return NewPhysics(physics.BodyDef{Type: physics.DynamicBody, FixedRotation: true}, shape, fixture, BodyToObject)
}

func (*Physics) Type() ecs.ComponentType  { return ecs.CPhysics }
func (*Physics) Phase() ecs.Phase         { return ecs.PhasePostUpdate }
func (*Physics) Receive(ecs.Message, any) {}

// Init creates the body in world at the owner's position.
func (p *Physics) Init(world *physics.World, owner *ecs.GameObject) error {
	switch p.state {
	case bodyInitialized:
		return fmt.Errorf("%v: %w", owner, ErrBodyAlreadyInitialized)
	case bodyDestroyed:
		return fmt.Errorf("%v: %w", owner, ErrBodyDestroyed)
	}

	def := p.def
	def.Position = p.bodyPosition(owner)
	def.Angle = owner.Rotation * math.Pi / 180
	body, err := world.CreateBody(def)
	if err != nil {
		return fmt.Errorf("%v: create body: %w", owner, err)
	}
	body.UserData = owner.ID()

	if _, err := world.CreateFixture(body, p.shape, p.fixture); err != nil {
		_ = world.DestroyBody(body)
		return fmt.Errorf("%v: create fixture: %w", owner, err)
	}
	p.shape.Dispose()
	p.shape = nil

	p.body = body
	p.state = bodyInitialized
	if p.OnInit != nil {
		p.OnInit(body)
	}
	return nil
}

// Destroy releases the body from world. It fails if the body was never
// created or has already been released.
func (p *Physics) Destroy(world *physics.World) error {
	if err := p.check(); err != nil {
		return err
	}
	if err := world.DestroyBody(p.body); err != nil {
		return err
	}
	p.body = nil
	p.state = bodyDestroyed
	return nil
}

// Body returns the simulated body.
func (p *Physics) Body() (*physics.Body, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	return p.body, nil
}

// Initialized reports whether the body exists and has not been destroyed.
func (p *Physics) Initialized() bool { return p.state == bodyInitialized }

// Update synchronizes the object and the body in the configured direction.
func (p *Physics) Update(_ float64, owner *ecs.GameObject) error {
	if err := p.check(); err != nil {
		return fmt.Errorf("%v: %w", owner, err)
	}
	switch p.Positioning {
	case ObjectToBody:
		p.body.SetTransform(p.bodyPosition(owner), owner.Rotation*math.Pi/180)
	case BodyToObject:
		parent := owner.WorldPosition().Sub(owner.Position)
		owner.Position = p.body.Position().Sub(owner.CenterOffset()).Sub(parent)
		owner.Rotation = p.body.Angle() * 180 / math.Pi
	}
	return nil
}

// bodyPosition is where the body sits for the owner's current transform.
// A body driven by its object sits on the object's position; a body that
// drives its object sits on the object's centre.
func (p *Physics) bodyPosition(owner *ecs.GameObject) cp.Vector {
	pos := owner.WorldPosition()
	if p.Positioning == BodyToObject {
		pos = pos.Add(owner.CenterOffset())
	}
	return pos
}

func (p *Physics) AddContactListener(l ContactListener) {
	p.listeners = append(p.listeners, l)
}

// RemoveContactListener unregisters l. It reports whether l was found.
func (p *Physics) RemoveContactListener(l ContactListener) bool {
	for i, x := range p.listeners {
		if x == l {
			p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// PostCollisionBegin notifies every listener, in registration order, that
// a contact began. Listeners added or removed during the call take effect
// from the next contact.
func (p *Physics) PostCollisionBegin(c Contact) {
	for _, l := range p.snapshot() {
		l.OnContactBegin(c)
	}
}

// PostCollisionEnd notifies every listener that a contact ended.
func (p *Physics) PostCollisionEnd(c Contact) {
	for _, l := range p.snapshot() {
		l.OnContactEnd(c)
	}
}

func (p *Physics) snapshot() []ContactListener {
	return append([]ContactListener(nil), p.listeners...)
}

func (p *Physics) check() error {
	switch p.state {
	case bodyUninitialized:
		return ErrBodyNotInitialized
	case bodyDestroyed:
		return ErrBodyDestroyed
	}
	return nil
}
