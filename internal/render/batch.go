package render

import (
	"swipe/assets"

	"github.com/gdamore/tcell/v2"
)

// Quad is the destination of a draw call in world units: the rectangle's
// bottom-left corner, its size and its rotation in degrees.
type Quad struct {
	X, Y          float64
	Width, Height float64
	Rotation      float64
}

// Batch receives draw calls from the render pass.
//
// Tint is drawing state that custom render parameters may change for a
// single draw; tcell.ColorDefault means each drawable keeps its own color.
type Batch interface {
	Draw(d assets.Drawable, q Quad)
	Tint() tcell.Color
	SetTint(c tcell.Color)
}
