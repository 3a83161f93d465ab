package ecs

import (
	"fmt"
	"sort"
)

// Lookup resolves an ID back to its object. Listeners and other
// back-references hold IDs and go through a Lookup instead of pointers.
type Lookup interface {
	Object(id EntityID) (*GameObject, bool)
}

// World is the table of registered objects, keyed by ID.
type World struct {
	nextID  EntityID
	objects map[EntityID]*GameObject
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID:  1,
		objects: make(map[EntityID]*GameObject),
	}
}

// Register mints an ID for obj and records it.
func (w *World) Register(obj *GameObject) (EntityID, error) {
	if obj.id != NilEntity {
		return obj.id, fmt.Errorf("register %v: %w", obj, ErrObjectRegistered)
	}
	id := w.nextID
	w.nextID++
	obj.id = id
	w.objects[id] = obj
	return id, nil
}

// Unregister forgets the object with the given ID and clears its ID.
func (w *World) Unregister(id EntityID) error {
	obj, ok := w.objects[id]
	if !ok {
		return fmt.Errorf("unregister %d: %w", id, ErrObjectNotRegistered)
	}
	delete(w.objects, id)
	obj.id = NilEntity
	return nil
}

// Object returns the registered object with the given ID.
func (w *World) Object(id EntityID) (*GameObject, bool) {
	obj, ok := w.objects[id]
	return obj, ok
}

// Alive reports whether id is registered.
func (w *World) Alive(id EntityID) bool {
	_, ok := w.objects[id]
	return ok
}

// Len returns the number of registered objects.
func (w *World) Len() int { return len(w.objects) }

// Query returns the IDs of registered objects that have every listed
// component kind, in ascending ID order.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	var result []EntityID
	for id, obj := range w.objects {
		match := true
		for _, t := range types {
			if !obj.components.Has(t) {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Tagged returns registered objects carrying tag t, in ascending ID order.
func (w *World) Tagged(t Tag) []*GameObject {
	var ids []EntityID
	for id, obj := range w.objects {
		if obj.HasTag(t) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*GameObject, len(ids))
	for i, id := range ids {
		out[i] = w.objects[id]
	}
	return out
}
