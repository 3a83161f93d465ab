package physics

import (
	"fmt"
	"math"
)

// ShapeKind enumerates the supported collision shapes.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

// Shape describes collision geometry. It is consumed by CreateFixture and
// must be disposed by its owner afterwards; a disposed shape cannot be used
// to create another fixture.
type Shape struct {
	kind       ShapeKind
	halfWidth  float64
	halfHeight float64
	radius     float64
	disposed   bool
}

// NewBox returns a box descriptor centred on the body, given half extents.
func NewBox(halfWidth, halfHeight float64) *Shape {
	return &Shape{kind: ShapeBox, halfWidth: halfWidth, halfHeight: halfHeight}
}

// NewCircle returns a circle descriptor centred on the body.
func NewCircle(radius float64) *Shape {
	return &Shape{kind: ShapeCircle, radius: radius}
}

func (s *Shape) Kind() ShapeKind { return s.kind }

// Dispose releases the descriptor.
func (s *Shape) Dispose() { s.disposed = true }

// Disposed reports whether Dispose has been called.
func (s *Shape) Disposed() bool { return s.disposed }

func (s *Shape) area() float64 {
	switch s.kind {
	case ShapeCircle:
		return math.Pi * s.radius * s.radius
	default:
		return 4 * s.halfWidth * s.halfHeight
	}
}

func (s *Shape) String() string {
	switch s.kind {
	case ShapeCircle:
		return fmt.Sprintf("circle(r=%g)", s.radius)
	default:
		return fmt.Sprintf("box(%gx%g)", 2*s.halfWidth, 2*s.halfHeight)
	}
}
