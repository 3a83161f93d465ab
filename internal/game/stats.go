package game

import (
	"swipe/internal/component"
	"swipe/internal/ecs"
	"swipe/internal/factory"
)

// stats counts what the player ran into. It listens on the player's
// physics component.
type stats struct {
	collisions int
	destroyed  int
	hit        map[ecs.EntityID]bool
}

func newStats() *stats { return &stats{hit: make(map[ecs.EntityID]bool)} }

func (s *stats) OnContactBegin(c component.Contact) {
	switch {
	case c.Other.HasTag(factory.TagBlockade):
		s.collisions++
	case c.Other.HasTag(factory.TagDestructible):
		// A crate stays touchable while it explodes.
		if !s.hit[c.Other.ID()] {
			s.hit[c.Other.ID()] = true
			s.destroyed++
		}
	}
}

func (s *stats) OnContactEnd(component.Contact) {}
