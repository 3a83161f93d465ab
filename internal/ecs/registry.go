package ecs

import "fmt"

// Registry maps each capability kind to at most one component.
// The table is indexed by ComponentType so lookups never hash.
type Registry struct {
	slots [numComponentTypes]Component
	count int
}

// Attach stores c under its kind. Attaching a second component of a kind
// that is already present fails with ErrDuplicateComponent.
func (r *Registry) Attach(c Component) error {
	t := c.Type()
	if !t.Valid() {
		return fmt.Errorf("attach %v: %w", t, ErrUnknownComponentType)
	}
	if r.slots[t] != nil {
		return fmt.Errorf("attach %v: %w", t, ErrDuplicateComponent)
	}
	r.slots[t] = c
	r.count++
	return nil
}

// Detach removes and returns the component stored under t.
func (r *Registry) Detach(t ComponentType) (Component, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("detach %v: %w", t, ErrUnknownComponentType)
	}
	c := r.slots[t]
	if c == nil {
		return nil, fmt.Errorf("detach %v: %w", t, ErrComponentNotFound)
	}
	r.slots[t] = nil
	r.count--
	return c, nil
}

// Get returns the component stored under t, or nil.
func (r *Registry) Get(t ComponentType) Component {
	if !t.Valid() {
		return nil
	}
	return r.slots[t]
}

// Has reports whether a component of kind t is attached.
func (r *Registry) Has(t ComponentType) bool { return r.Get(t) != nil }

// Len returns the number of attached components.
func (r *Registry) Len() int { return r.count }

// Each calls fn once for every component attached when Each was called.
// The table is copied first, so fn may attach or detach freely.
func (r *Registry) Each(fn func(Component)) {
	snapshot := r.slots
	for _, t := range componentOrder {
		if c := snapshot[t]; c != nil {
			fn(c)
		}
	}
}

// InPhase returns the kinds whose current component declares phase p.
func (r *Registry) InPhase(p Phase) []ComponentType {
	var kinds []ComponentType
	for _, t := range componentOrder {
		if c := r.slots[t]; c != nil && c.Phase() == p {
			kinds = append(kinds, t)
		}
	}
	return kinds
}
