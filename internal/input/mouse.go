package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
)

// Mouse turns primary-button drags into touch samples. Events update the
// live state; Poll latches it once per frame so every component sees the
// same sample.
type Mouse struct {
	down bool
	pos  cp.Vector

	frameDown   bool
	wasDown     bool
	justTouched bool
	framePos    cp.Vector
	delta       cp.Vector
}

// HandleMouse records ev.
func (m *Mouse) HandleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	// Columns are half as wide as rows are tall.
	m.pos = cp.Vector{X: float64(x) / 2, Y: float64(y)}
	m.down = ev.Buttons()&tcell.Button1 != 0
}

// Poll starts a new frame sample.
func (m *Mouse) Poll() {
	m.frameDown = m.down
	m.justTouched = m.down && !m.wasDown
	if m.down && m.wasDown {
		m.delta = m.pos.Sub(m.framePos)
	} else {
		m.delta = cp.Vector{}
	}
	m.framePos = m.pos
	m.wasDown = m.down
}

func (m *Mouse) Touched() bool { return m.frameDown }

func (m *Mouse) JustTouched() bool { return m.justTouched }

// Delta is the pointer movement since the previous frame, y down.
func (m *Mouse) Delta() cp.Vector { return m.delta }
