package component

import (
	"swipe/internal/ecs"
	"swipe/internal/render"

	"github.com/gdamore/tcell/v2"
)

// RenderMode tells the render pass whether to draw the object itself.
type RenderMode uint8

const (
	ModeSprite RenderMode = iota
	// ModeCustom objects are drawn by their owner, not the render pass.
	ModeCustom
)

// RenderParams change batch state around a single draw call.
type RenderParams interface {
	Apply(b render.Batch)
	Reset(b render.Batch)
}

// RenderComponent is the capability stored under ecs.CRender.
type RenderComponent interface {
	ecs.Component
	Sprite() string
	Mode() RenderMode
	Params() []RenderParams
}

// renderBase holds what every render component shares.
type renderBase struct {
	mode   RenderMode
	params []RenderParams
}

func (*renderBase) Type() ecs.ComponentType  { return ecs.CRender }
func (*renderBase) Phase() ecs.Phase         { return ecs.PhaseRender }
func (*renderBase) Receive(ecs.Message, any) {}

func (r *renderBase) Mode() RenderMode         { return r.mode }
func (r *renderBase) SetMode(m RenderMode)     { r.mode = m }
func (r *renderBase) Params() []RenderParams   { return r.params }
func (r *renderBase) AddParams(p RenderParams) { r.params = append(r.params, p) }

// Sprite draws a single named sprite.
type Sprite struct {
	renderBase
	Name string
}

func NewSprite(name string) *Sprite { return &Sprite{Name: name} }

func (s *Sprite) Sprite() string { return s.Name }

func (*Sprite) Update(float64, *ecs.GameObject) error { return nil }

// Tint overrides the batch tint for one draw.
type Tint struct {
	Color tcell.Color

	saved tcell.Color
}

func (t *Tint) Apply(b render.Batch) {
	t.saved = b.Tint()
	b.SetTint(t.Color)
}

func (t *Tint) Reset(b render.Batch) { b.SetTint(t.saved) }

// DamageTint tints the draw with Color once Health drops below Below.
type DamageTint struct {
	Health *Health
	Below  float64
	Color  tcell.Color

	saved tcell.Color
}

func (t *DamageTint) Apply(b render.Batch) {
	t.saved = b.Tint()
	if t.Health != nil && t.Health.Fraction() < t.Below {
		b.SetTint(t.Color)
	}
}

func (t *DamageTint) Reset(b render.Batch) { b.SetTint(t.saved) }
