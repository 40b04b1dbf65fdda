package ecs

import (
	"fmt"

	"github.com/milk9111/hero/ecs/component"
)

// Add sets the component of kind k on e, replacing any previous value.
func Add[T any](w *World, e Entity, k component.Kind[T], value *T) error {
	if !k.Valid() {
		return component.ErrInvalidKind
	}
	if value == nil {
		return fmt.Errorf("%w: %s", component.ErrNilComponent, k.Name())
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("%w: %s on %s", ErrEntityNotAlive, k.Name(), e)
	}
	w.store(k.ID(), true).Set(e, value)
	return nil
}

// Get returns the component of kind k on e.
func Get[T any](w *World, e Entity, k component.Kind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	v, ok := w.store(k.ID(), false).Get(e).(*T)
	return v, ok
}

func Has[T any](w *World, e Entity, k component.Kind[T]) bool {
	return IsAlive(w, e) && w.store(k.ID(), false).Has(e)
}

func Remove[T any](w *World, e Entity, k component.Kind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return w.store(k.ID(), false).Remove(e)
}

// ForEach visits every live entity holding a component of kind k. The
// callback may add or remove components and destroy entities.
func ForEach[T any](w *World, k component.Kind[T], fn func(Entity, *T)) {
	if w == nil {
		return
	}
	s := w.store(k.ID(), false)
	for _, e := range s.Entities() {
		if v, ok := Get(w, e, k); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits entities holding both kinds.
func ForEach2[A, B any](w *World, ka component.Kind[A], kb component.Kind[B], fn func(Entity, *A, *B)) {
	ForEach(w, ka, func(e Entity, a *A) {
		if b, ok := Get(w, e, kb); ok {
			fn(e, a, b)
		}
	})
}

// ForEach3 visits entities holding all three kinds.
func ForEach3[A, B, C any](w *World, ka component.Kind[A], kb component.Kind[B], kc component.Kind[C], fn func(Entity, *A, *B, *C)) {
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c, ok := Get(w, e, kc); ok {
			fn(e, a, b, c)
		}
	})
}
