package component

import "swipe/internal/ecs"

// Health absorbs MessageDamage and requests the owner's removal once it
// runs out.
type Health struct {
	Current, Max float64
}

func NewHealth(max float64) *Health { return &Health{Current: max, Max: max} }

func (*Health) Type() ecs.ComponentType { return ecs.CBehavior }
func (*Health) Phase() ecs.Phase        { return ecs.PhaseUpdate }

// Fraction returns Current/Max clamped to [0, 1].
func (h *Health) Fraction() float64 {
	if h.Max <= 0 || h.Current <= 0 {
		return 0
	}
	if h.Current >= h.Max {
		return 1
	}
	return h.Current / h.Max
}

func (h *Health) Update(_ float64, owner *ecs.GameObject) error {
	if h.Current <= 0 && !owner.ShouldRemove() {
		owner.RequestRemoval()
	}
	return nil
}

func (h *Health) Receive(msg ecs.Message, payload any) {
	if msg != MessageDamage {
		return
	}
	if amount, ok := payload.(float64); ok {
		h.Current -= amount
	}
}
