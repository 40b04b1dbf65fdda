package system

import (
	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/ecs/component"
	"github.com/milk9111/hero/level"
)

// BreakFrames is how long a broken object stays visible.
const BreakFrames = 20

// ThrownSystem flies thrown objects along their direction, lowers them as
// they go and breaks them when they land or hit a wall.
type ThrownSystem struct {
	maps MapSource
}

func NewThrownSystem(maps MapSource) *ThrownSystem {
	return &ThrownSystem{maps: maps}
}

func (s *ThrownSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	var m Obstacles
	if s.maps != nil {
		m = s.maps()
	}
	ecs.ForEach2(w, component.ThrownComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, thrown *component.Thrown, t *component.Transform) {
			dx, dy := common.Direction4Step(thrown.Direction4)
			step := thrown.Speed
			if rest := thrown.Distance - thrown.Traveled; rest < step {
				step = rest
			}
			layer := level.Layer(t.Layer)
			next := transformBox(t).Translate(common.Round(float64(dx)*step), common.Round(float64(dy)*step))

			blocked := m != nil && m.CollidesWithObstacles(layer, next, level.Solid{IgnoreLowWalls: true})
			if !blocked {
				t.X += float64(dx) * step
				t.Y += float64(dy) * step
				thrown.Traveled += step
			}
			if thrown.Distance > 0 {
				t.Z = thrown.StartZ * (1 - thrown.Traveled/thrown.Distance)
			}
			hit := m != nil && hitEnemy(m, layer, transformBox(t))
			if blocked || hit || thrown.Traveled >= thrown.Distance {
				s.land(w, e, t)
			}
		})
}

func (s *ThrownSystem) land(w *ecs.World, e ecs.Entity, t *component.Transform) {
	t.Z = 0
	ecs.Remove(w, e, component.ThrownComponent.Kind())
	_ = ecs.Add(w, e, component.BrokenComponent.Kind(), &component.Broken{})
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: BreakFrames})

	sound := ""
	if l, ok := ecs.Get(w, e, component.LiftableComponent.Kind()); ok {
		sound = l.DestructionSound
	}
	w.Events().Push(ecs.Event{Type: ecs.EventBroken, Entity: e, Data: sound})
}
