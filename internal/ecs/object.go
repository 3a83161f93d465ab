package ecs

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// Size is a width/height pair in world units.
type Size struct {
	Width, Height float64
}

// Tag is a bitmask used to classify objects without type assertions.
type Tag uint32

// Host is notified of structural changes to objects it owns.
// A Scene installs itself as host when an object is added to it.
type Host interface {
	ObjectAdded(obj *GameObject) error
	ComponentAttached(obj *GameObject, c Component) error
	ComponentDetached(obj *GameObject, c Component) error
	Logger() *zap.Logger
}

var ErrHasParent = errors.New("ecs: object already has a parent")

// GameObject is a scene node: a transform, a capability table, an action
// slot and an optional list of children positioned relative to it.
type GameObject struct {
	Name     string
	Position cp.Vector
	Size     Size
	Rotation float64   // degrees, counter-clockwise
	Anchor   cp.Vector // normalized pivot, 0–1 per axis
	Hidden   bool

	id           EntityID
	tags         Tag
	components   Registry
	action       Action
	shouldRemove bool
	parent       *GameObject
	children     []*GameObject
	host         Host
}

// NewGameObject creates an unregistered object.
func NewGameObject(name string) *GameObject {
	return &GameObject{Name: name}
}

// ID returns the object's ID, or NilEntity before it is registered.
func (o *GameObject) ID() EntityID { return o.id }

func (o *GameObject) String() string {
	return fmt.Sprintf("%s#%d", o.Name, o.id)
}

// AddTag sets the given tag bits.
func (o *GameObject) AddTag(t Tag) { o.tags |= t }

// HasTag reports whether every bit of t is set.
func (o *GameObject) HasTag(t Tag) bool { return o.tags&t == t }

// SetHost installs the owner notified about structural changes.
// Passing nil detaches the object from its host.
func (o *GameObject) SetHost(h Host) { o.host = h }

// Host returns the current host, if any.
func (o *GameObject) Host() Host { return o.host }

func (o *GameObject) logger() *zap.Logger {
	if o.host == nil {
		return zap.NewNop()
	}
	return o.host.Logger()
}

// Attach adds c to the object's capability table.
func (o *GameObject) Attach(c Component) error {
	if err := o.components.Attach(c); err != nil {
		return fmt.Errorf("%v: %w", o, err)
	}
	if o.host != nil {
		if err := o.host.ComponentAttached(o, c); err != nil {
			_, _ = o.components.Detach(c.Type())
			return err
		}
	}
	return nil
}

// MustAttach is like Attach but panics on error. Use it while building
// objects, where a duplicate kind is a programming error.
func (o *GameObject) MustAttach(c Component) *GameObject {
	if err := o.Attach(c); err != nil {
		panic(err)
	}
	return o
}

// Detach removes and returns the component of kind t.
func (o *GameObject) Detach(t ComponentType) (Component, error) {
	c, err := o.components.Detach(t)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", o, err)
	}
	if o.host != nil {
		if err := o.host.ComponentDetached(o, c); err != nil {
			return c, err
		}
	}
	return c, nil
}

// Component returns the component of kind t, or nil.
func (o *GameObject) Component(t ComponentType) Component { return o.components.Get(t) }

// Components exposes the capability table.
func (o *GameObject) Components() *Registry { return &o.components }

// SendMessage delivers msg synchronously to every attached component.
func (o *GameObject) SendMessage(msg Message, payload any) {
	o.components.Each(func(c Component) {
		c.Receive(msg, payload)
	})
}

// Update advances the active action, if any.
func (o *GameObject) Update(dt float64) {
	if o.action == nil {
		return
	}
	o.action.Update(dt)
	if o.action.Finished() {
		o.action = nil
	}
}

// RequestRemoval marks the object for removal at the end of the update pass.
func (o *GameObject) RequestRemoval() { o.shouldRemove = true }

// ShouldRemove reports whether removal has been requested.
func (o *GameObject) ShouldRemove() bool { return o.shouldRemove }

// RunAction starts a and makes it the active action, replacing any other.
func (o *GameObject) RunAction(a Action) {
	if o.action != nil {
		o.logger().Warn("replacing active action", zap.Stringer("object", o))
	}
	a.Start(o)
	o.action = a
}

// StopAction clears the active action without finishing it.
func (o *GameObject) StopAction() { o.action = nil }

// IsActionActive reports whether an action is running.
func (o *GameObject) IsActionActive() bool { return o.action != nil }

// Parent returns the parent node, or nil for roots.
func (o *GameObject) Parent() *GameObject { return o.parent }

// Children returns the child list. Callers must not modify it.
func (o *GameObject) Children() []*GameObject { return o.children }

// AddChild appends child under o. If o belongs to a host the child is
// announced to it, which registers it and initializes its physics.
func (o *GameObject) AddChild(child *GameObject) error {
	if child.parent != nil {
		return fmt.Errorf("add %v to %v: %w", child, o, ErrHasParent)
	}
	child.parent = o
	o.children = append(o.children, child)
	if o.host != nil {
		if err := o.host.ObjectAdded(child); err != nil {
			o.RemoveChild(child)
			return err
		}
	}
	return nil
}

// RemoveChild unlinks child from o. It reports whether child was found.
func (o *GameObject) RemoveChild(child *GameObject) bool {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// WorldPosition returns the position with every ancestor's offset applied.
func (o *GameObject) WorldPosition() cp.Vector {
	pos := o.Position
	for p := o.parent; p != nil; p = p.parent {
		pos = pos.Add(p.Position)
	}
	return pos
}

// CenterOffset is the vector from the anchor point to the object's centre:
// size * (0.5 - anchor).
func (o *GameObject) CenterOffset() cp.Vector {
	return cp.Vector{
		X: o.Size.Width * (0.5 - o.Anchor.X),
		Y: o.Size.Height * (0.5 - o.Anchor.Y),
	}
}

// Bounds returns the axis-aligned rectangle covered by the object in its
// parent's space as (x, y, width, height).
func (o *GameObject) Bounds() (x, y, w, h float64) {
	return o.Position.X - o.Size.Width*o.Anchor.X,
		o.Position.Y - o.Size.Height*o.Anchor.Y,
		o.Size.Width, o.Size.Height
}

// Walk visits o and its descendants depth-first, parents before children.
func (o *GameObject) Walk(fn func(*GameObject)) {
	fn(o)
	for _, c := range o.children {
		c.Walk(fn)
	}
}
