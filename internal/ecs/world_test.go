package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAssignsID(t *testing.T) {
	w := NewWorld()
	obj := NewGameObject("o")

	id, err := w.Register(obj)
	require.NoError(t, err)
	assert.NotEqual(t, NilEntity, id)
	assert.Equal(t, id, obj.ID())
	assert.True(t, w.Alive(id))

	got, ok := w.Object(id)
	require.True(t, ok)
	assert.Same(t, obj, got)
}

func TestRegisterTwiceFails(t *testing.T) {
	w := NewWorld()
	obj := NewGameObject("o")
	_, err := w.Register(obj)
	require.NoError(t, err)

	_, err = w.Register(obj)
	assert.ErrorIs(t, err, ErrObjectRegistered)
}

func TestUnregister(t *testing.T) {
	w := NewWorld()
	obj := NewGameObject("o")
	id, _ := w.Register(obj)

	require.NoError(t, w.Unregister(id))
	assert.False(t, w.Alive(id))
	assert.Equal(t, NilEntity, obj.ID())
	assert.ErrorIs(t, w.Unregister(id), ErrObjectNotRegistered)
}

func TestIDsAreNotReused(t *testing.T) {
	w := NewWorld()
	a := NewGameObject("a")
	first, _ := w.Register(a)
	require.NoError(t, w.Unregister(first))

	second, _ := w.Register(NewGameObject("b"))
	assert.NotEqual(t, first, second)
}

func TestQueryFiltersCorrectly(t *testing.T) {
	w := NewWorld()

	both := NewGameObject("both").MustAttach(newStub(CInput)).MustAttach(newStub(CPhysics))
	onlyInput := NewGameObject("input").MustAttach(newStub(CInput))
	bothID, _ := w.Register(both)
	_, _ = w.Register(onlyInput)

	assert.Equal(t, []EntityID{bothID}, w.Query(CInput, CPhysics))
	assert.Len(t, w.Query(CInput), 2)
	assert.Nil(t, w.Query())
}

func TestTagged(t *testing.T) {
	const tagPlayer Tag = 1
	w := NewWorld()
	player := NewGameObject("player")
	player.AddTag(tagPlayer)
	_, _ = w.Register(NewGameObject("rock"))
	_, _ = w.Register(player)

	assert.Equal(t, []*GameObject{player}, w.Tagged(tagPlayer))
}
