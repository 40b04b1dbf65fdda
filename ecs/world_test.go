package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/hero/ecs/component"
)

var (
	posKind  = component.NewKind[component.Transform]("test_transform")
	nameKind = component.NewKind[string]("test_name")
)

func TestRefCounts(t *testing.T) {
	cases := []struct {
		name      string
		retains   int
		releases  int
		wantCount int
		wantAlive bool
	}{
		{"created_by_world", 0, 0, 1, true},
		{"held_by_state", 1, 0, 2, true},
		{"handed_over", 2, 1, 2, true},
		{"thrown_back_to_world", 1, 1, 1, true},
		{"last_holder_gone", 1, 2, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			e := CreateEntity(w)
			for i := 0; i < c.retains; i++ {
				Retain(w, e)
			}
			for i := 0; i < c.releases; i++ {
				Release(w, e)
			}
			if got := RefCount(w, e); got != c.wantCount {
				t.Fatalf("expected refcount %d, got %d", c.wantCount, got)
			}
			if IsAlive(w, e) != c.wantAlive {
				t.Fatalf("expected alive=%v", c.wantAlive)
			}
		})
	}
}

func TestReleaseDestroysWithComponents(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	if err := Add(w, e, posKind, &component.Transform{X: 4, Y: 8}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	Retain(w, e)

	if n := Release(w, e); n != 1 || !Has(w, e, posKind) {
		t.Fatalf("one holder left must keep the entity, count %d", n)
	}
	if n := Release(w, e); n != 0 {
		t.Fatalf("expected no holder left, got %d", n)
	}
	if IsAlive(w, e) || len(w.Query(posKind)) != 0 {
		t.Fatalf("expected the entity and its transform gone")
	}
	if n := Release(w, e); n != 0 {
		t.Fatalf("releasing a dead entity must be a no-op, got %d", n)
	}
	if n := Retain(w, e); n != 0 {
		t.Fatalf("a dead entity cannot be retained, got %d", n)
	}

	evts := w.Events().Drain()
	if len(evts) != 1 || evts[0].Type != EventDestroyed || evts[0].Entity != e {
		t.Fatalf("expected one destroyed event, got %v", evts)
	}
}

func TestDestroyIgnoresRefCount(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	Retain(w, e)
	Retain(w, e)
	if !DestroyEntity(w, e) {
		t.Fatalf("expected the entity destroyed")
	}
	if RefCount(w, e) != 0 {
		t.Fatalf("a destroyed entity has no holder")
	}
	if DestroyEntity(w, e) {
		t.Fatalf("destroying twice must fail")
	}
}

func TestFreeSlotsAreReused(t *testing.T) {
	cases := []struct {
		name    string
		create  int
		destroy []int
	}{
		{"last", 3, []int{2}},
		{"middle", 3, []int{1}},
		{"two", 4, []int{0, 3}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, c.create)
			for i := range ents {
				ents[i] = CreateEntity(w)
			}
			freed := map[entityID]generation{}
			for _, i := range c.destroy {
				freed[ents[i].id()] = ents[i].generation()
				DestroyEntity(w, ents[i])
			}

			for range c.destroy {
				e := CreateEntity(w)
				gen, ok := freed[e.id()]
				if !ok {
					t.Fatalf("expected a freed slot reused, got %v", e)
				}
				if e.generation() != gen+1 {
					t.Fatalf("expected generation %d, got %v", gen+1, e)
				}
				if RefCount(w, e) != 1 {
					t.Fatalf("a reused slot starts with the world's reference")
				}
				delete(freed, e.id())
			}
			if e := CreateEntity(w); int(e.id()) != c.create+1 {
				t.Fatalf("expected a fresh slot once the free list is empty, got %v", e)
			}
			if len(Entities(w)) != c.create+1 {
				t.Fatalf("expected %d live entities, got %d", c.create+1, len(Entities(w)))
			}
		})
	}
}

func TestStaleHandleDoesNotReachNewEntity(t *testing.T) {
	w := NewWorld()
	old := CreateEntity(w)
	if err := Add(w, old, nameKind, ptr("pot")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	DestroyEntity(w, old)

	e := CreateEntity(w)
	if e.id() != old.id() {
		t.Fatalf("expected the slot reused")
	}
	if Has(w, e, nameKind) {
		t.Fatalf("new entity should not inherit components")
	}
	if _, ok := Get(w, old, nameKind); ok {
		t.Fatalf("stale handle should not resolve")
	}
	if err := Add(w, old, nameKind, ptr("bush")); !errors.Is(err, ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if RefCount(w, old) != 0 || Retain(w, old) != 0 {
		t.Fatalf("a stale handle has no holders")
	}

	if err := Add(w, e, nameKind, ptr("bush")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if v, _ := Get(w, e, nameKind); *v != "bush" {
		t.Fatalf("expected bush, got %s", *v)
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	if err := Add(w, e, component.Kind[string]{}, ptr("x")); !errors.Is(err, component.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	if err := Add[string](w, e, nameKind, nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestForEachAllowsDestroying(t *testing.T) {
	w := NewWorld()
	var ents []Entity
	for i := 0; i < 4; i++ {
		e := CreateEntity(w)
		_ = Add(w, e, posKind, &component.Transform{X: float64(i)})
		ents = append(ents, e)
	}
	_ = Add(w, ents[1], nameKind, ptr("pot"))

	visited := 0
	ForEach(w, posKind, func(e Entity, tr *component.Transform) {
		visited++
		if tr.X == 0 {
			DestroyEntity(w, ents[2])
		}
	})
	if visited != 3 {
		t.Fatalf("unexpected visit count %d", visited)
	}
	if IsAlive(w, ents[2]) {
		t.Fatalf("expected the entity destroyed during iteration")
	}

	var both []Entity
	ForEach2(w, posKind, nameKind, func(e Entity, _ *component.Transform, _ *string) {
		both = append(both, e)
	})
	if len(both) != 1 || both[0] != ents[1] {
		t.Fatalf("expected only the named entity, got %v", both)
	}
	if got := w.Query(posKind, nameKind); len(got) != 1 || got[0] != ents[1] {
		t.Fatalf("expected the query to match ForEach2, got %v", got)
	}
}

func TestEventsSurviveUntilNextUpdate(t *testing.T) {
	w := NewWorld()
	w.AddSystem(SystemFunc(func(w *World) {
		w.Events().Push(Event{Type: EventBroken, Data: "stone"})
	}))

	w.Update()
	evts := w.Events().Drain()
	if len(evts) != 1 || evts[0].Type != EventBroken || evts[0].Data != "stone" {
		t.Fatalf("expected one broken event, got %v", evts)
	}
	if again := w.Events().Drain(); again != nil {
		t.Fatalf("draining twice must return nothing, got %v", again)
	}

	w.Update()
	w.Update()
	if evts := w.Events().Drain(); len(evts) != 1 {
		t.Fatalf("expected events of the previous update to be dropped, got %v", evts)
	}
}

func TestDestroyedEventIsFlushedByUpdate(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	DestroyEntity(w, e)
	w.Update()
	if evts := w.Events().Drain(); len(evts) != 0 {
		t.Fatalf("an update drops events pushed before it, got %v", evts)
	}
}

func ptr[T any](v T) *T { return &v }
