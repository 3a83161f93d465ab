package scene

import (
	"errors"
	"fmt"

	"swipe/assets"
	"swipe/internal/component"
	"swipe/internal/ecs"
	"swipe/internal/render"
)

var (
	ErrEmptySprite    = errors.New("scene: sprite name is empty")
	ErrAssetNotLoaded = errors.New("scene: sprite not loaded")
)

// Visitor is driven by Traverse over a scene tree.
type Visitor interface {
	// Enter reports whether obj and its subtree should be visited.
	Enter(obj *ecs.GameObject) bool
	Visit(obj *ecs.GameObject) error
}

// Traverse visits obj and its descendants depth-first, parents before
// children. Objects waiting for removal are skipped together with their
// subtree. Children appended during the walk are visited in the same pass.
// The first error stops the walk.
func Traverse(obj *ecs.GameObject, v Visitor) error {
	if obj.ShouldRemove() || !v.Enter(obj) {
		return nil
	}
	if err := v.Visit(obj); err != nil {
		return err
	}
	for i := 0; i < len(obj.Children()); i++ {
		if err := Traverse(obj.Children()[i], v); err != nil {
			return err
		}
	}
	return nil
}

// runPhase updates obj's components that declare phase p. Components are
// looked up again right before they run, so one detached earlier in the
// frame is skipped.
func runPhase(obj *ecs.GameObject, p ecs.Phase, dt float64, after func(ecs.Component) error) error {
	for _, t := range obj.Components().InPhase(p) {
		c := obj.Component(t)
		if c == nil || c.Phase() != p {
			continue
		}
		if err := c.Update(dt, obj); err != nil {
			return fmt.Errorf("%v %v: %w", obj, t, err)
		}
		if after != nil {
			if err := after(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Updater is the logic pass: input, then the object's own update and
// generic behaviour, then physics synchronization.
type Updater struct {
	DT float64
}

func (Updater) Enter(*ecs.GameObject) bool { return true }

func (u Updater) Visit(obj *ecs.GameObject) error {
	for _, p := range ecs.UpdatePhases {
		if p == ecs.PhaseUpdate {
			obj.Update(u.DT)
		}
		if err := runPhase(obj, p, u.DT, nil); err != nil {
			return err
		}
	}
	return nil
}

// AssetRegistry resolves sprite names for the render pass.
type AssetRegistry interface {
	IsLoaded(name string) bool
	Get(name string) (assets.Drawable, error)
}

// Renderer is the draw pass. Render-side components are updated with DT
// before the render component is drawn, so animations advance once per
// drawn frame.
type Renderer struct {
	DT     float64
	Batch  render.Batch
	Assets AssetRegistry
}

func (r Renderer) Enter(obj *ecs.GameObject) bool { return !obj.Hidden }

func (r Renderer) Visit(obj *ecs.GameObject) error {
	for _, p := range ecs.RenderPhases {
		err := runPhase(obj, p, r.DT, func(c ecs.Component) error {
			if c.Type() != ecs.CRender {
				return nil
			}
			return r.draw(obj, c)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r Renderer) draw(obj *ecs.GameObject, c ecs.Component) error {
	rc, ok := c.(component.RenderComponent)
	if !ok || rc.Mode() == component.ModeCustom {
		return nil
	}
	name := rc.Sprite()
	if name == "" {
		return fmt.Errorf("%v: %w", obj, ErrEmptySprite)
	}
	if !r.Assets.IsLoaded(name) {
		return fmt.Errorf("%v: %q: %w", obj, name, ErrAssetNotLoaded)
	}
	d, err := r.Assets.Get(name)
	if err != nil {
		return fmt.Errorf("%v: %w", obj, err)
	}

	params := rc.Params()
	for _, p := range params {
		p.Apply(r.Batch)
	}
	r.Batch.Draw(d, quadOf(obj))
	for _, p := range params {
		p.Reset(r.Batch)
	}
	return nil
}

// quadOf returns the world rectangle covered by obj.
func quadOf(obj *ecs.GameObject) render.Quad {
	pos := obj.WorldPosition()
	return render.Quad{
		X:        pos.X - obj.Size.Width*obj.Anchor.X,
		Y:        pos.Y - obj.Size.Height*obj.Anchor.Y,
		Width:    obj.Size.Width,
		Height:   obj.Size.Height,
		Rotation: obj.Rotation,
	}
}
