package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/ecs/component"
	"github.com/milk9111/hero/level"
)

// ProjectileSystem moves arrows and boomerangs. Hookshot tips are driven by
// the hero that owns them and are skipped.
type ProjectileSystem struct {
	maps MapSource
}

func NewProjectileSystem(maps MapSource) *ProjectileSystem {
	return &ProjectileSystem{maps: maps}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	var m Obstacles
	if s.maps != nil {
		m = s.maps()
	}
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
			switch p.Kind {
			case component.ProjectileArrow:
				s.updateArrow(w, m, e, p, t)
			case component.ProjectileBoomerang:
				s.updateBoomerang(w, m, e, p, t)
			}
		})
}

func (s *ProjectileSystem) advance(m Obstacles, p *component.Projectile, t *component.Transform) bool {
	layer := level.Layer(t.Layer)
	next := transformBox(t).Translate(int(p.Velocity.X), int(p.Velocity.Y))
	if m != nil && !p.Returning && m.CollidesWithObstacles(layer, next, level.Solid{IgnoreLowWalls: true}) {
		return false
	}
	t.X += p.Velocity.X
	t.Y += p.Velocity.Y
	p.Traveled += p.Velocity.Length()
	return true
}

func (s *ProjectileSystem) updateArrow(w *ecs.World, m Obstacles, e ecs.Entity, p *component.Projectile, t *component.Transform) {
	moved := s.advance(m, p, t)
	hit := m != nil && hitEnemy(m, level.Layer(t.Layer), transformBox(t))
	if !moved || hit || (p.MaxDistance > 0 && p.Traveled >= p.MaxDistance) {
		ecs.DestroyEntity(w, e)
	}
}

func (s *ProjectileSystem) updateBoomerang(w *ecs.World, m Obstacles, e ecs.Entity, p *component.Projectile, t *component.Transform) {
	if !p.Returning {
		moved := s.advance(m, p, t)
		hit := m != nil && hitEnemy(m, level.Layer(t.Layer), transformBox(t))
		if !moved || hit || p.Traveled >= p.MaxDistance {
			p.Returning = true
		}
		return
	}

	owner, ok := ecs.Get(w, ecs.Entity(p.Owner), component.TransformComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return
	}
	speed := p.Velocity.Length()
	from := cp.Vector{X: t.X, Y: t.Y}
	to := cp.Vector{X: owner.X, Y: owner.Y}
	if from.Distance(to) <= speed {
		w.Events().Push(ecs.Event{Type: ecs.EventReturned, Entity: e})
		ecs.DestroyEntity(w, e)
		return
	}
	p.Velocity = to.Sub(from).Normalize().Mult(speed)
	t.X += p.Velocity.X
	t.Y += p.Velocity.Y
}
