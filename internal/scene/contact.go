package scene

import (
	"swipe/internal/component"
	"swipe/internal/ecs"
	"swipe/internal/physics"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

type contactEvent struct {
	begin  bool
	a, b   *ecs.GameObject
	va, vb cp.Vector
}

// dispatcher buffers raw body contacts raised by the physics world and
// later delivers them to the physics capabilities of the owning objects.
// Owners are resolved through the object table when the contact is
// raised, since a body may be gone by the time it is delivered.
type dispatcher struct {
	objects ecs.Lookup
	log     *zap.Logger
	events  []contactEvent
}

func (d *dispatcher) BeginContact(a, b *physics.Body) { d.record(true, a, b) }

func (d *dispatcher) EndContact(a, b *physics.Body) { d.record(false, a, b) }

func (d *dispatcher) record(begin bool, a, b *physics.Body) {
	oa, okA := d.owner(a)
	ob, okB := d.owner(b)
	if !okA || !okB {
		d.log.Warn("ignoring contact with unowned body", zap.Bool("begin", begin))
		return
	}
	d.events = append(d.events, contactEvent{
		begin: begin,
		a:     oa,
		b:     ob,
		va:    a.LinearVelocity(),
		vb:    b.LinearVelocity(),
	})
}

func (d *dispatcher) owner(b *physics.Body) (*ecs.GameObject, bool) {
	id, ok := b.UserData.(ecs.EntityID)
	if !ok {
		return nil, false
	}
	return d.objects.Object(id)
}

// pending returns the number of buffered events.
func (d *dispatcher) pending() int { return len(d.events) }

// flush delivers buffered events in the order they were raised. Events
// raised while flushing are kept for the next flush. Sides that have left
// the scene or lost their physics capability are not notified.
func (d *dispatcher) flush(inScene func(*ecs.GameObject) bool) {
	events := d.events
	d.events = nil
	for _, ev := range events {
		notify(inScene, ev.begin, component.Contact{Self: ev.a, Other: ev.b, SelfVelocity: ev.va, OtherVelocity: ev.vb})
		notify(inScene, ev.begin, component.Contact{Self: ev.b, Other: ev.a, SelfVelocity: ev.vb, OtherVelocity: ev.va})
	}
}

func notify(inScene func(*ecs.GameObject) bool, begin bool, c component.Contact) {
	if !inScene(c.Self) {
		return
	}
	pc, ok := c.Self.Component(ecs.CPhysics).(component.PhysicsComponent)
	if !ok {
		return
	}
	if begin {
		pc.PostCollisionBegin(c)
	} else {
		pc.PostCollisionEnd(c)
	}
}
