package input

import (
	"testing"
	"time"

	"swipe/internal/clock"
	"swipe/internal/component"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestKeysHoldWindow(t *testing.T) {
	clk := clock.NewMock(time.Unix(0, 0))
	k := NewKeys(clk, 150*time.Millisecond)
	assert.False(t, k.Held(component.DirRight))

	assert.True(t, k.HandleKey(key(tcell.KeyRight)))
	assert.True(t, k.Held(component.DirRight))

	clk.Advance(149 * time.Millisecond)
	assert.True(t, k.Held(component.DirRight))
	clk.Advance(time.Millisecond)
	assert.False(t, k.Held(component.DirRight))
}

func TestKeysRuneBindings(t *testing.T) {
	clk := clock.NewMock(time.Unix(0, 0))
	k := NewKeys(clk, time.Second)

	for r, d := range map[rune]component.Direction{
		'h': component.DirLeft, 'l': component.DirRight,
		'k': component.DirUp, 'j': component.DirDown,
		'A': component.DirLeft, 'd': component.DirRight,
	} {
		k.Release()
		assert.True(t, k.HandleKey(runeKey(r)), string(r))
		assert.True(t, k.Held(d), string(r))
	}
	assert.False(t, k.HandleKey(runeKey('x')))
	assert.False(t, k.HandleKey(key(tcell.KeyEnter)))
}

func TestKeysOppositeReleases(t *testing.T) {
	clk := clock.NewMock(time.Unix(0, 0))
	k := NewKeys(clk, time.Second)

	k.HandleKey(key(tcell.KeyLeft))
	k.HandleKey(key(tcell.KeyUp))
	k.HandleKey(key(tcell.KeyRight))
	assert.False(t, k.Held(component.DirLeft))
	assert.True(t, k.Held(component.DirRight))
	assert.True(t, k.Held(component.DirUp), "vertical keys are independent")
}

func TestMouseDragSamples(t *testing.T) {
	m := &Mouse{}
	m.Poll()
	assert.False(t, m.Touched())

	m.HandleMouse(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	m.Poll()
	assert.True(t, m.Touched())
	assert.True(t, m.JustTouched())
	assert.Equal(t, cp.Vector{}, m.Delta())

	m.HandleMouse(tcell.NewEventMouse(14, 3, tcell.Button1, tcell.ModNone))
	m.Poll()
	assert.True(t, m.Touched())
	assert.False(t, m.JustTouched())
	assert.Equal(t, cp.Vector{X: 2, Y: -2}, m.Delta())

	m.Poll()
	assert.Equal(t, cp.Vector{}, m.Delta(), "no movement since the last frame")

	m.HandleMouse(tcell.NewEventMouse(14, 3, tcell.ButtonNone, tcell.ModNone))
	m.Poll()
	assert.False(t, m.Touched())
}
