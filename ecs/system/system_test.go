package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/ecs/component"
	"github.com/milk9111/hero/level"
)

func newMap(t *testing.T) *level.Map {
	t.Helper()
	m, err := level.NewMap("test", 20, 20)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	// wall column at x = 120..127
	m.Fill(level.LayerLow, common.NewRect(120, 0, 8, 160), level.GroundWall)
	return m
}

func source(m *level.Map) MapSource {
	return func() Obstacles { return m }
}

func TestThrownLandsAndBreaks(t *testing.T) {
	cases := []struct {
		name     string
		distance float64
		wantX    float64
	}{
		{"open_ground", 32, 48},
		{"stopped_by_wall", 200, 104},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := newMap(t)
			w := ecs.NewWorld()
			w.AddSystem(NewThrownSystem(source(m)))
			w.AddSystem(NewTTLSystem())

			e := ecs.CreateEntity(w)
			_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 16, Y: 16, Z: 12, Width: 16, Height: 16})
			_ = ecs.Add(w, e, component.LiftableComponent.Kind(), &component.Liftable{DestructionSound: "stone"})
			_ = ecs.Add(w, e, component.ThrownComponent.Kind(), &component.Thrown{Direction4: 0, Speed: 4, Distance: c.distance, StartZ: 12})

			var broken []ecs.Event
			for i := 0; i < 100 && !ecs.Has(w, e, component.BrokenComponent.Kind()); i++ {
				w.Update()
				for _, evt := range w.Events().Drain() {
					if evt.Type == ecs.EventBroken {
						broken = append(broken, evt)
					}
				}
			}
			tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
			if !ok {
				t.Fatalf("expected transform while breaking")
			}
			if tr.X != c.wantX || tr.Z != 0 {
				t.Fatalf("expected landing at x=%v z=0, got x=%v z=%v", c.wantX, tr.X, tr.Z)
			}
			if len(broken) != 1 || broken[0].Data != "stone" {
				t.Fatalf("expected one broken event with the destruction sound, got %v", broken)
			}

			for i := 0; i < BreakFrames; i++ {
				w.Update()
			}
			if ecs.IsAlive(w, e) {
				t.Fatalf("expected broken object removed after its TTL")
			}
		})
	}
}

func TestBoomerangReturnsToOwner(t *testing.T) {
	m := newMap(t)
	w := ecs.NewWorld()
	w.AddSystem(NewProjectileSystem(source(m)))

	owner := ecs.CreateEntity(w)
	_ = ecs.Add(w, owner, component.TransformComponent.Kind(), &component.Transform{X: 16, Y: 16, Width: 16, Height: 16})

	b := ecs.CreateEntity(w)
	_ = ecs.Add(w, b, component.TransformComponent.Kind(), &component.Transform{X: 16, Y: 16, Width: 8, Height: 8})
	_ = ecs.Add(w, b, component.ProjectileComponent.Kind(), &component.Projectile{
		Kind:        component.ProjectileBoomerang,
		Velocity:    cp.Vector{X: 4},
		MaxDistance: 40,
		Owner:       uint64(owner),
	})

	returned := false
	sawReturning := false
	for i := 0; i < 100 && ecs.IsAlive(w, b); i++ {
		w.Update()
		if p, ok := ecs.Get(w, b, component.ProjectileComponent.Kind()); ok && p.Returning {
			sawReturning = true
		}
		for _, evt := range w.Events().Drain() {
			if evt.Type == ecs.EventReturned && evt.Entity == b {
				returned = true
			}
		}
	}
	if !sawReturning || !returned || ecs.IsAlive(w, b) {
		t.Fatalf("expected the boomerang to go back and disappear, returning=%v returned=%v", sawReturning, returned)
	}
}

func TestArrowHitsEnemy(t *testing.T) {
	m := newMap(t)
	enemy := &level.Enemy{Base: level.NewBase("slime", common.NewRect(64, 16, 16, 16), level.LayerLow), Life: 2}
	m.AddEntity(enemy)

	w := ecs.NewWorld()
	w.AddSystem(NewProjectileSystem(source(m)))
	a := ecs.CreateEntity(w)
	_ = ecs.Add(w, a, component.TransformComponent.Kind(), &component.Transform{X: 16, Y: 20, Width: 8, Height: 4})
	_ = ecs.Add(w, a, component.ProjectileComponent.Kind(), &component.Projectile{Kind: component.ProjectileArrow, Velocity: cp.Vector{X: 8}})

	for i := 0; i < 20 && ecs.IsAlive(w, a); i++ {
		w.Update()
	}
	if ecs.IsAlive(w, a) || enemy.Life != 1 {
		t.Fatalf("expected arrow consumed and enemy hurt once, alive=%v life=%d", ecs.IsAlive(w, a), enemy.Life)
	}
}
