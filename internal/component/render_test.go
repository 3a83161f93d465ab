package component

import (
	"testing"

	"swipe/internal/ecs"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSprite(t *testing.T) {
	s := NewSprite("player")
	assert.Equal(t, ecs.CRender, s.Type())
	assert.Equal(t, ecs.PhaseRender, s.Phase())
	assert.Equal(t, "player", s.Sprite())
	assert.Equal(t, ModeSprite, s.Mode())

	s.SetMode(ModeCustom)
	assert.Equal(t, ModeCustom, s.Mode())
}

func TestTintAppliesAndRestores(t *testing.T) {
	b := &fakeBatch{tint: tcell.ColorDefault}
	s := NewSprite("x")
	s.AddParams(&Tint{Color: tcell.ColorOrange})
	require.Len(t, s.Params(), 1)

	for _, p := range s.Params() {
		p.Apply(b)
	}
	assert.Equal(t, tcell.ColorOrange, b.Tint())
	for _, p := range s.Params() {
		p.Reset(b)
	}
	assert.Equal(t, tcell.ColorDefault, b.Tint())
}

func TestDamageTintOnlyWhenHurt(t *testing.T) {
	b := &fakeBatch{tint: tcell.ColorDefault}
	h := NewHealth(100)
	tint := &DamageTint{Health: h, Below: 0.5, Color: tcell.ColorDarkRed}

	tint.Apply(b)
	assert.Equal(t, tcell.ColorDefault, b.Tint())
	tint.Reset(b)

	h.Receive(MessageDamage, 60.0)
	tint.Apply(b)
	assert.Equal(t, tcell.ColorDarkRed, b.Tint())
	tint.Reset(b)
	assert.Equal(t, tcell.ColorDefault, b.Tint())
}

func TestAnimationLoops(t *testing.T) {
	a := NewAnimation(0.1, "f0", "f1", "f2")
	obj := ecs.NewGameObject("fx")
	assert.Equal(t, "f0", a.Sprite())

	require.NoError(t, a.Update(0.05, obj))
	assert.Equal(t, "f0", a.Sprite())
	require.NoError(t, a.Update(0.05, obj))
	assert.Equal(t, "f1", a.Sprite())

	// A long frame skips ahead and wraps around.
	require.NoError(t, a.Update(0.2, obj))
	assert.Equal(t, 0, a.Frame())
}

func TestAnimationWithoutFrames(t *testing.T) {
	a := NewAnimation(0.1)
	require.NoError(t, a.Update(1, ecs.NewGameObject("fx")))
	assert.Empty(t, a.Sprite())
}

func TestAnimateOnceFinishesOnce(t *testing.T) {
	a := NewAnimateOnce(0.1, "e0", "e1")
	obj := ecs.NewGameObject("crate")
	var finishedWith []*ecs.GameObject
	a.OnFinish = func(owner *ecs.GameObject) { finishedWith = append(finishedWith, owner) }

	require.NoError(t, a.Update(0.1, obj))
	assert.Equal(t, "e1", a.Sprite())
	assert.False(t, a.Finished())

	require.NoError(t, a.Update(0.1, obj))
	assert.True(t, a.Finished())
	assert.Equal(t, "e1", a.Sprite())

	require.NoError(t, a.Update(1, obj))
	assert.Equal(t, []*ecs.GameObject{obj}, finishedWith)
}

func TestAnimateOnceCanRequestRemoval(t *testing.T) {
	a := NewAnimateOnce(0.5, "e0")
	a.OnFinish = (*ecs.GameObject).RequestRemoval
	obj := ecs.NewGameObject("crate")

	require.NoError(t, a.Update(0.5, obj))
	assert.True(t, obj.ShouldRemove())
}
