package component

import (
	"swipe/assets"
	"swipe/internal/ecs"
	"swipe/internal/render"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
)

// recorder is a behavior component that keeps every message it receives.
type recorder struct {
	msgs     []ecs.Message
	payloads []any
}

func (*recorder) Type() ecs.ComponentType               { return ecs.CBehavior }
func (*recorder) Phase() ecs.Phase                      { return ecs.PhaseUpdate }
func (*recorder) Update(float64, *ecs.GameObject) error { return nil }

func (r *recorder) Receive(msg ecs.Message, payload any) {
	r.msgs = append(r.msgs, msg)
	r.payloads = append(r.payloads, payload)
}

func (r *recorder) count(msg ecs.Message) int {
	n := 0
	for _, m := range r.msgs {
		if m == msg {
			n++
		}
	}
	return n
}

func (r *recorder) last(msg ecs.Message) any {
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if r.msgs[i] == msg {
			return r.payloads[i]
		}
	}
	return nil
}

type fakeKeys map[Direction]bool

func (k fakeKeys) Held(d Direction) bool { return k[d] }

type fakeTouch struct {
	touched, just bool
	delta         cp.Vector
}

func (t *fakeTouch) Touched() bool     { return t.touched }
func (t *fakeTouch) JustTouched() bool { return t.just }
func (t *fakeTouch) Delta() cp.Vector  { return t.delta }

type fakeBatch struct {
	tint  tcell.Color
	draws []render.Quad
}

func (b *fakeBatch) Draw(_ assets.Drawable, q render.Quad) { b.draws = append(b.draws, q) }
func (b *fakeBatch) Tint() tcell.Color                     { return b.tint }
func (b *fakeBatch) SetTint(c tcell.Color)                 { b.tint = c }

// listenerLog records contact callbacks as "begin:<name>" / "end:<name>".
type listenerLog struct {
	name   string
	events *[]string
	onEvt  func()
}

func (l *listenerLog) OnContactBegin(c Contact) {
	*l.events = append(*l.events, l.name+":begin:"+c.Other.Name)
	if l.onEvt != nil {
		l.onEvt()
	}
}

func (l *listenerLog) OnContactEnd(c Contact) {
	*l.events = append(*l.events, l.name+":end:"+c.Other.Name)
}
