// Package input adapts tcell terminal events to the input states read by
// the input components.
package input

import (
	"time"

	"swipe/internal/clock"
	"swipe/internal/component"

	"github.com/gdamore/tcell/v2"
)

const numDirections = 4

// Keys tracks arrow-key state. Terminals report presses and auto-repeats
// but never releases, so a key counts as held for Hold after its last
// event.
type Keys struct {
	Hold time.Duration

	clock   clock.Clock
	last    [numDirections]time.Time
	pressed [numDirections]bool
}

// NewKeys creates a key state timed by clk.
func NewKeys(clk clock.Clock, hold time.Duration) *Keys {
	return &Keys{Hold: hold, clock: clk}
}

// keyToDirection maps a tcell key event to a direction.
func keyToDirection(ev *tcell.EventKey) (component.Direction, bool) {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return component.DirUp, true
	case tcell.KeyDown:
		return component.DirDown, true
	case tcell.KeyRight:
		return component.DirRight, true
	case tcell.KeyLeft:
		return component.DirLeft, true
	}

	// Rune keys.
	if ev.Key() != tcell.KeyRune {
		return 0, false
	}
	switch ev.Rune() {
	case 'k', 'K', 'w', 'W':
		return component.DirUp, true
	case 'j', 'J', 's', 'S':
		return component.DirDown, true
	case 'l', 'L', 'd', 'D':
		return component.DirRight, true
	case 'h', 'H', 'a', 'A':
		return component.DirLeft, true
	}
	return 0, false
}

func opposite(d component.Direction) component.Direction {
	switch d {
	case component.DirLeft:
		return component.DirRight
	case component.DirRight:
		return component.DirLeft
	case component.DirUp:
		return component.DirDown
	}
	return component.DirUp
}

// HandleKey records ev. It reports whether ev was a direction key.
// Pressing a direction releases the opposite one.
func (k *Keys) HandleKey(ev *tcell.EventKey) bool {
	d, ok := keyToDirection(ev)
	if !ok {
		return false
	}
	k.last[d] = k.clock.Now()
	k.pressed[d] = true
	k.pressed[opposite(d)] = false
	return true
}

// Held reports whether d was pressed within the hold window.
func (k *Keys) Held(d component.Direction) bool {
	if int(d) >= numDirections || !k.pressed[d] {
		return false
	}
	return k.clock.Now().Sub(k.last[d]) < k.Hold
}

// Release forgets every key.
func (k *Keys) Release() {
	k.pressed = [numDirections]bool{}
}
