// Package ecs is the world entity registry: generational entity handles
// with reference counts, component storage keyed by component kind, systems
// and an event queue.
package ecs

import (
	"errors"

	"github.com/milk9111/hero/ecs/component"
)

var ErrEntityNotAlive = errors.New("ecs: entity not alive")

// World owns entities, components, and system order.
type World struct {
	entities entityStore
	stores   map[component.ID]*SparseSet
	systems  []System
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ID]*SparseSet)}
}

// CreateEntity allocates a new entity. The world holds its single initial
// reference.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes the entity and all of its components, whatever its
// reference count.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	w.entities.destroy(e)
	w.events.Push(Event{Type: EventDestroyed, Entity: e})
	return true
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Retain adds a holder to the entity and returns the new count.
func Retain(w *World, e Entity) int {
	if w == nil {
		return 0
	}
	return w.entities.retain(e)
}

// Release drops a holder. The entity is destroyed when the last holder is
// gone. It returns the remaining count.
func Release(w *World, e Entity) int {
	if w == nil || !w.entities.isAlive(e) {
		return 0
	}
	n := w.entities.release(e)
	if n == 0 {
		DestroyEntity(w, e)
	}
	return n
}

// RefCount returns how many holders the entity has, zero when dead.
func RefCount(w *World, e Entity) int {
	if w == nil {
		return 0
	}
	return w.entities.refCount(e)
}

func (w *World) store(id component.ID, create bool) *SparseSet {
	s := w.stores[id]
	if s == nil && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update drops the events of the previous update and runs all systems
// once. Events pushed by systems stay readable until the next Update.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.events.flush()
	for _, s := range w.systems {
		s.Update(w)
	}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
