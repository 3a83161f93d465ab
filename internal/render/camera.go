package render

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Camera translates between world coordinates and screen coordinates.
// World X is multiplied by 2 because emoji occupy 2 terminal columns, and
// world Y points up while screen rows grow downwards.
type Camera struct {
	X, Y       float64 // world point shown at the middle of the viewport
	Scale      float64 // cells per world unit
	ViewWidth  int     // in terminal columns
	ViewHeight int     // in terminal rows
}

// NewCamera creates a camera centered on the world origin.
func NewCamera(viewW, viewH int, scale float64) *Camera {
	if scale <= 0 {
		scale = 1
	}
	return &Camera{Scale: scale, ViewWidth: viewW, ViewHeight: viewH}
}

// Center repositions the camera so that p is in the middle.
func (c *Camera) Center(p cp.Vector) {
	c.X, c.Y = p.X, p.Y
}

// Follow moves the camera a fraction alpha of the way towards target on
// the X axis. alpha is clamped to [0, 1].
func (c *Camera) Follow(target cp.Vector, alpha float64) {
	alpha = math.Max(0, math.Min(1, alpha))
	c.X += (target.X - c.X) * alpha
}

// Resize updates the viewport dimensions.
func (c *Camera) Resize(viewW, viewH int) {
	c.ViewWidth, c.ViewHeight = viewW, viewH
}

// WorldToScreen converts p to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(p cp.Vector) (sx, sy int, visible bool) {
	sx = c.ViewWidth/2 + 2*int(math.Floor((p.X-c.X)*c.Scale))
	sy = c.ViewHeight/2 - int(math.Floor((p.Y-c.Y)*c.Scale))
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to the world point at the
// bottom-left corner of that cell.
func (c *Camera) ScreenToWorld(sx, sy int) cp.Vector {
	return cp.Vector{
		X: c.X + float64((sx-c.ViewWidth/2)/2)/c.Scale,
		Y: c.Y + float64(c.ViewHeight/2-sy)/c.Scale,
	}
}

// LeftEdge returns the world X coordinate of the viewport's left border.
func (c *Camera) LeftEdge() float64 {
	return c.X - float64(c.ViewWidth/2)/2/c.Scale
}
