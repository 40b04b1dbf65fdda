// Package component holds the data attached to world entities: positions,
// liftable and thrown objects, projectiles and lifetimes.
package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrNilComponent = errors.New("ecs: component is nil")
	ErrInvalidKind  = errors.New("ecs: invalid component kind")
)

// ID identifies a component kind in the world stores.
type ID uint32

var lastID atomic.Uint32

// Kind is a typed component kind. Two kinds of the same Go type are
// distinct stores.
type Kind[T any] struct {
	id   ID
	name string
}

func NewKind[T any](name string) Kind[T] {
	return Kind[T]{id: ID(lastID.Add(1)), name: name}
}

func (k Kind[T]) ID() ID { return k.id }

// Name is used in errors and debug output.
func (k Kind[T]) Name() string { return k.name }

func (k Kind[T]) Valid() bool { return k.id != 0 }

// Handle is how packages declare their component kinds once.
type Handle[T any] struct {
	kind Kind[T]
}

func NewComponent[T any](name string) Handle[T] {
	return Handle[T]{kind: NewKind[T](name)}
}

func (h Handle[T]) Kind() Kind[T] { return h.kind }
