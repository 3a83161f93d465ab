// Package scene owns the object tree and the physics world and runs the
// per-frame sequence: logic update, removals, physics step, contact
// delivery, render.
package scene

import (
	"errors"
	"fmt"
	"time"

	"swipe/internal/clock"
	"swipe/internal/component"
	"swipe/internal/ecs"
	"swipe/internal/physics"
	"swipe/internal/render"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

var ErrObjectInScene = errors.New("scene: object already belongs to a scene")

// Options configures a Scene.
type Options struct {
	Gravity            cp.Vector
	AllowSleep         bool
	VelocityIterations int
	PositionIterations int
	// Start is the simulated time of the first frame.
	Start time.Time
}

// DefaultOptions returns zero gravity and 6 velocity / 2 position
// iterations per step.
func DefaultOptions() Options {
	return Options{
		VelocityIterations: 6,
		PositionIterations: 2,
		Start:              time.Unix(0, 0).UTC(),
	}
}

// Scene is a tree of game objects sharing one physics world.
type Scene struct {
	root     *ecs.GameObject
	objects  *ecs.World
	world    *physics.World
	assets   AssetRegistry
	log      *zap.Logger
	clock    *clock.Sim
	contacts *dispatcher

	velocityIterations int
	positionIterations int
	lastDelta          float64
	frame              uint64
}

// New creates an empty scene drawing sprites from reg.
func New(opts Options, reg AssetRegistry, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	objects := ecs.NewWorld()
	s := &Scene{
		root:               ecs.NewGameObject("root"),
		objects:            objects,
		world:              physics.NewWorld(opts.Gravity, opts.AllowSleep),
		assets:             reg,
		log:                log,
		clock:              clock.NewSim(opts.Start),
		contacts:           &dispatcher{objects: objects, log: log},
		velocityIterations: opts.VelocityIterations,
		positionIterations: opts.PositionIterations,
	}
	s.world.SetContactListener(s.contacts)
	_, _ = objects.Register(s.root)
	s.root.SetHost(s)
	return s
}

// Root returns the tree's root node.
func (s *Scene) Root() *ecs.GameObject { return s.root }

// World returns the physics world owned by the scene.
func (s *Scene) World() *physics.World { return s.world }

// Objects returns the table of objects in the scene.
func (s *Scene) Objects() *ecs.World { return s.objects }

// Clock returns the simulated clock, advanced by every Update.
func (s *Scene) Clock() clock.Clock { return s.clock }

// Frame returns the number of completed updates.
func (s *Scene) Frame() uint64 { return s.frame }

// Object returns the object with the given ID, if it is in the scene.
func (s *Scene) Object(id ecs.EntityID) (*ecs.GameObject, bool) {
	return s.objects.Object(id)
}

// Contains reports whether obj is currently part of the scene.
func (s *Scene) Contains(obj *ecs.GameObject) bool {
	if obj.ID() == ecs.NilEntity || obj.Host() != s {
		return false
	}
	got, ok := s.objects.Object(obj.ID())
	return ok && got == obj
}

// AddObject inserts obj under the root. obj and its children are
// registered and their physics bodies created in the scene's world.
func (s *Scene) AddObject(obj *ecs.GameObject) error {
	return s.root.AddChild(obj)
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *zap.Logger { return s.log }

// ObjectAdded registers a subtree that was attached to a node of the scene.
func (s *Scene) ObjectAdded(obj *ecs.GameObject) error {
	var added []*ecs.GameObject
	var err error
	obj.Walk(func(o *ecs.GameObject) {
		if err != nil {
			return
		}
		if err = s.adopt(o); err == nil {
			added = append(added, o)
		}
	})
	if err != nil {
		for _, o := range added {
			s.release(o)
		}
		return err
	}
	return nil
}

func (s *Scene) adopt(o *ecs.GameObject) error {
	if h := o.Host(); h != nil && h != ecs.Host(s) {
		return fmt.Errorf("add %v: %w", o, ErrObjectInScene)
	}
	if _, err := s.objects.Register(o); err != nil {
		return err
	}
	o.SetHost(s)
	if pc, ok := o.Component(ecs.CPhysics).(component.PhysicsComponent); ok {
		if err := pc.Init(s.world, o); err != nil {
			o.SetHost(nil)
			_ = s.objects.Unregister(o.ID())
			return err
		}
	}
	s.log.Debug("object added", zap.Stringer("object", o))
	return nil
}

// ComponentAttached creates the body of a physics capability attached to
// an object already in the scene.
func (s *Scene) ComponentAttached(obj *ecs.GameObject, c ecs.Component) error {
	if pc, ok := c.(component.PhysicsComponent); ok {
		return pc.Init(s.world, obj)
	}
	return nil
}

// ComponentDetached releases the body of a detached physics capability.
func (s *Scene) ComponentDetached(_ *ecs.GameObject, c ecs.Component) error {
	if pc, ok := c.(component.PhysicsComponent); ok {
		if _, err := pc.Body(); err == nil {
			return pc.Destroy(s.world)
		}
	}
	return nil
}

// Update runs one frame: the logic pass over the tree, pending removals,
// one physics step of dt, then contact delivery. dt is used as given;
// callers cap it. The first error aborts the frame.
func (s *Scene) Update(dt float64) error {
	s.clock.Advance(dt)
	s.lastDelta = dt

	if err := Traverse(s.root, Updater{DT: dt}); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	s.processRemovals()

	if err := s.world.Step(dt, s.velocityIterations, s.positionIterations); err != nil {
		return fmt.Errorf("step: %w", err)
	}
	s.contacts.flush(s.Contains)
	s.processRemovals()

	s.frame++
	return nil
}

// Render draws every visible object into batch.
func (s *Scene) Render(batch render.Batch) error {
	r := Renderer{DT: s.lastDelta, Batch: batch, Assets: s.assets}
	if err := Traverse(s.root, r); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// processRemovals detaches every object that requested removal, together
// with its subtree.
func (s *Scene) processRemovals() {
	var doomed []*ecs.GameObject
	var collect func(o *ecs.GameObject)
	collect = func(o *ecs.GameObject) {
		for _, c := range o.Children() {
			if c.ShouldRemove() {
				doomed = append(doomed, c)
				continue
			}
			collect(c)
		}
	}
	collect(s.root)

	for _, o := range doomed {
		if p := o.Parent(); p != nil {
			p.RemoveChild(o)
		}
		o.Walk(s.release)
	}
}

// release destroys o's body, strips its components and forgets it.
func (s *Scene) release(o *ecs.GameObject) {
	o.SetHost(nil)
	o.Components().Each(func(c ecs.Component) {
		_, _ = o.Components().Detach(c.Type())
		if pc, ok := c.(component.PhysicsComponent); ok {
			if _, err := pc.Body(); err == nil {
				if err := pc.Destroy(s.world); err != nil {
					s.log.Error("destroy body", zap.Stringer("object", o), zap.Error(err))
				}
			}
		}
	})
	s.log.Debug("object removed", zap.Stringer("object", o))
	_ = s.objects.Unregister(o.ID())
}

// Dispose removes every object and releases the physics world.
func (s *Scene) Dispose() {
	for _, c := range append([]*ecs.GameObject(nil), s.root.Children()...) {
		s.root.RemoveChild(c)
		c.Walk(s.release)
	}
	s.world.Dispose()
}
