package system

import (
	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs/component"
	"github.com/milk9111/hero/level"
)

// Obstacles is the part of the map the flying-object systems need.
type Obstacles interface {
	CollidesWithObstacles(layer level.Layer, box common.Rect, subject level.ObstacleSubject) bool
	EntitiesOverlapping(layer level.Layer, box common.Rect) []level.Entity
}

// MapSource returns the current map, which changes when the hero
// teleports. It may return nil.
type MapSource func() Obstacles

func transformBox(t *component.Transform) common.Rect {
	return common.NewRect(common.Round(t.X), common.Round(t.Y), t.Width, t.Height)
}

// hitEnemy damages the first live enemy overlapping the box.
func hitEnemy(m Obstacles, layer level.Layer, box common.Rect) bool {
	for _, e := range m.EntitiesOverlapping(layer, box) {
		if enemy, ok := e.(*level.Enemy); ok && enemy.IsAlive() {
			enemy.Life--
			return true
		}
	}
	return false
}
