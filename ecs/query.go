package ecs

import "github.com/milk9111/hero/ecs/component"

// Kind is the untyped view of a component kind used by Query.
type Kind interface {
	ID() component.ID
}

// Query returns the live entities holding every listed kind.
func (w *World) Query(kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	// iterate the smallest store
	var smallest *SparseSet
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		if smallest == nil || s.Len() < smallest.Len() {
			smallest = s
		}
	}
	var out []Entity
	for _, e := range smallest.Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		all := true
		for _, k := range kinds {
			if !w.store(k.ID(), false).Has(e) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	return out
}
