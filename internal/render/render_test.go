package render

import (
	"strings"
	"testing"

	"swipe/assets"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, ss.Init())
	ss.SetSize(80, 24)
	return ss
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestCameraWorldToScreen(t *testing.T) {
	c := NewCamera(20, 10, 1)

	sx, sy, ok := c.WorldToScreen(cp.Vector{})
	assert.True(t, ok)
	assert.Equal(t, 10, sx)
	assert.Equal(t, 5, sy)

	sx, sy, ok = c.WorldToScreen(cp.Vector{X: 1.5, Y: 2.2})
	assert.True(t, ok)
	assert.Equal(t, 12, sx)
	assert.Equal(t, 3, sy)

	_, _, ok = c.WorldToScreen(cp.Vector{X: 100})
	assert.False(t, ok)
}

func TestCameraScreenToWorldRoundTrip(t *testing.T) {
	c := NewCamera(40, 20, 1)
	c.Center(cp.Vector{X: 7, Y: -3})

	sx, sy, ok := c.WorldToScreen(cp.Vector{X: 9, Y: -1})
	require.True(t, ok)
	assert.Equal(t, cp.Vector{X: 9, Y: -1}, c.ScreenToWorld(sx, sy))
}

func TestCameraFollow(t *testing.T) {
	c := NewCamera(20, 10, 1)
	c.Follow(cp.Vector{X: 10, Y: 50}, 0.5)
	assert.InDelta(t, 5.0, c.X, 1e-9)
	assert.Equal(t, 0.0, c.Y)

	c.Follow(cp.Vector{X: 10}, 4)
	assert.InDelta(t, 10.0, c.X, 1e-9)
	assert.InDelta(t, 10.0-5, c.LeftEdge(), 1e-9)
}

func TestScreenBatchDrawsAtQuadCentre(t *testing.T) {
	ss := newSimScreen(t)
	b := NewScreenBatch(ss, 1)
	b.Begin()

	b.Draw(assets.Drawable{Glyph: "@", Color: tcell.ColorRed}, Quad{X: -0.5, Y: -0.5, Width: 1, Height: 1})

	cam := b.Camera()
	assert.Equal(t, '@', runeAt(ss, cam.ViewWidth/2, cam.ViewHeight/2))
}

func TestScreenBatchWideGlyphFillsSecondColumn(t *testing.T) {
	ss := newSimScreen(t)
	b := NewScreenBatch(ss, 1)
	b.Begin()

	b.Draw(assets.Drawable{Glyph: "🧱"}, Quad{Width: 0.5, Height: 0.5})

	cam := b.Camera()
	assert.Equal(t, '🧱', runeAt(ss, cam.ViewWidth/2, cam.ViewHeight/2))
}

func TestScreenBatchDropsOffscreenQuads(t *testing.T) {
	ss := newSimScreen(t)
	b := NewScreenBatch(ss, 1)
	b.Begin()

	b.Draw(assets.Drawable{Glyph: "@"}, Quad{X: 1000, Y: 1000, Width: 1, Height: 1})

	w, h := ss.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			assert.NotEqual(t, '@', runeAt(ss, x, y))
		}
	}
}

func TestScreenBatchTint(t *testing.T) {
	ss := newSimScreen(t)
	b := NewScreenBatch(ss, 1)
	assert.Equal(t, tcell.ColorDefault, b.Tint())
	b.SetTint(tcell.ColorGreen)
	assert.Equal(t, tcell.ColorGreen, b.Tint())
}

func TestDrawHUD(t *testing.T) {
	ss := newSimScreen(t)
	b := NewScreenBatch(ss, 1)
	b.Begin()
	b.DrawHUD(HUDState{Distance: 42, Destroyed: 3, Message: "boom"})

	_, h := ss.Size()
	var line strings.Builder
	for x := 0; x < 40; x++ {
		line.WriteRune(runeAt(ss, x, h-HUDRows+1))
	}
	assert.Contains(t, line.String(), "Distance: 42")
	assert.Contains(t, line.String(), "Destroyed: 3")
	assert.Equal(t, 'b', runeAt(ss, 0, h-1))
	assert.Equal(t, '─', runeAt(ss, 0, h-HUDRows))
}
