package render

import (
	"swipe/assets"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/mattn/go-runewidth"
)

// HUDRows is the number of screen rows reserved for the HUD.
const HUDRows = 3

// ScreenBatch draws sprites onto a tcell screen through a Camera.
type ScreenBatch struct {
	screen tcell.Screen
	camera *Camera
	tint   tcell.Color
	bg     tcell.Color
}

// NewScreenBatch creates a batch for the given screen. scale is the number
// of cells per world unit.
func NewScreenBatch(screen tcell.Screen, scale float64) *ScreenBatch {
	w, h := screen.Size()
	return &ScreenBatch{
		screen: screen,
		camera: NewCamera(w, h-HUDRows, scale),
		tint:   tcell.ColorDefault,
		bg:     tcell.ColorBlack,
	}
}

// Camera returns the batch's camera.
func (b *ScreenBatch) Camera() *Camera { return b.camera }

// Screen returns the underlying screen.
func (b *ScreenBatch) Screen() tcell.Screen { return b.screen }

// Begin clears the screen and resizes the viewport to the current
// screen size.
func (b *ScreenBatch) Begin() {
	w, h := b.screen.Size()
	b.camera.Resize(w, h-HUDRows)
	b.screen.Clear()
}

// End flushes the frame to the terminal.
func (b *ScreenBatch) End() { b.screen.Show() }

func (b *ScreenBatch) Tint() tcell.Color { return b.tint }

func (b *ScreenBatch) SetTint(c tcell.Color) { b.tint = c }

// Draw puts d's glyph in the cell under the quad's centre. Quads outside
// the viewport are dropped.
func (b *ScreenBatch) Draw(d assets.Drawable, q Quad) {
	center := cp.Vector{X: q.X + q.Width/2, Y: q.Y + q.Height/2}
	sx, sy, onScreen := b.camera.WorldToScreen(center)
	if !onScreen {
		return
	}
	fg := d.Color
	if b.tint != tcell.ColorDefault {
		fg = b.tint
	}
	style := tcell.StyleDefault.Foreground(fg).Background(b.bg)
	b.putGlyph(sx, sy, d.Glyph, style)
}

// DrawRow repeats glyph across the full width of the viewport at world
// height y.
func (b *ScreenBatch) DrawRow(d assets.Drawable, y float64) {
	_, sy, visible := b.camera.WorldToScreen(cp.Vector{X: b.camera.X, Y: y})
	if !visible {
		return
	}
	style := tcell.StyleDefault.Foreground(d.Color).Background(b.bg)
	step := runewidth.StringWidth(d.Glyph)
	if step < 1 {
		step = 1
	}
	for x := 0; x < b.camera.ViewWidth; x += step {
		b.putGlyph(x, sy, d.Glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (b *ScreenBatch) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	b.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		b.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
