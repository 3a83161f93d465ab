package component

import "swipe/internal/ecs"

// Messages exchanged between the components of one object.
const (
	// MessageMovement carries the desired direction as a cp.Vector.
	MessageMovement ecs.Message = iota + 1
	// MessageBlockadeCollision has no payload; input is disabled for a
	// short cooldown after it.
	MessageBlockadeCollision
	// MessageDamage carries the amount of health to remove as a float64.
	MessageDamage
)
