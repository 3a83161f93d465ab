package component

import (
	"testing"

	"swipe/internal/ecs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthTakesDamage(t *testing.T) {
	h := NewHealth(100)
	obj := ecs.NewGameObject("blockade")
	require.NoError(t, obj.Attach(h))

	obj.SendMessage(MessageDamage, 30.0)
	assert.InDelta(t, 70.0, h.Current, 1e-9)
	assert.InDelta(t, 0.7, h.Fraction(), 1e-9)

	obj.SendMessage(MessageDamage, 5)
	obj.SendMessage(MessageMovement, 99.0)
	assert.InDelta(t, 70.0, h.Current, 1e-9, "other messages and payload types are ignored")

	require.NoError(t, h.Update(0, obj))
	assert.False(t, obj.ShouldRemove())
}

func TestHealthRequestsRemovalWhenDepleted(t *testing.T) {
	h := NewHealth(10)
	obj := ecs.NewGameObject("blockade")
	require.NoError(t, obj.Attach(h))

	obj.SendMessage(MessageDamage, 12.5)
	assert.Zero(t, h.Fraction())
	require.NoError(t, h.Update(0, obj))
	assert.True(t, obj.ShouldRemove())
}
