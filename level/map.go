package level

import (
	"errors"
	"fmt"

	"github.com/milk9111/hero/common"
)

var ErrInvalidSize = errors.New("level: invalid map size")

// Map is a tile grid per layer plus the dynamic entities placed on it.
type Map struct {
	name       string
	cols, rows int
	grounds    [LayerCount][]Ground
	entities   []Entity

	spawnX, spawnY int
	spawnLayer     Layer
}

// NewMap creates a map of cols x rows tiles filled with empty ground on
// every layer but the low one, which is traversable.
func NewMap(name string, cols, rows int) (*Map, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cols, rows)
	}
	m := &Map{name: name, cols: cols, rows: rows}
	for l := range m.grounds {
		m.grounds[l] = make([]Ground, cols*rows)
	}
	for i := range m.grounds[LayerLow] {
		m.grounds[LayerLow][i] = GroundTraversable
	}
	return m, nil
}

func (m *Map) Name() string { return m.name }

// Width returns the map width in pixels.
func (m *Map) Width() int { return m.cols * common.TileSize }

// Height returns the map height in pixels.
func (m *Map) Height() int { return m.rows * common.TileSize }

// Bounds returns the map rectangle in pixels.
func (m *Map) Bounds() common.Rect {
	return common.NewRect(0, 0, m.Width(), m.Height())
}

// Spawn returns the hero start position.
func (m *Map) Spawn() (x, y int, layer Layer) {
	return m.spawnX, m.spawnY, m.spawnLayer
}

func (m *Map) SetSpawn(x, y int, layer Layer) {
	m.spawnX, m.spawnY, m.spawnLayer = x, y, layer
}

// SetTile sets the ground of one tile.
func (m *Map) SetTile(layer Layer, col, row int, g Ground) {
	if !layer.Valid() || col < 0 || row < 0 || col >= m.cols || row >= m.rows {
		return
	}
	m.grounds[layer][row*m.cols+col] = g
}

// Tile returns the ground stored on one tile of a layer, without looking
// at lower layers.
func (m *Map) Tile(layer Layer, col, row int) Ground {
	if !layer.Valid() || col < 0 || row < 0 || col >= m.cols || row >= m.rows {
		return GroundWall
	}
	return m.grounds[layer][row*m.cols+col]
}

// Fill sets the ground of every tile overlapped by a pixel rectangle.
func (m *Map) Fill(layer Layer, box common.Rect, g Ground) {
	m.eachTile(box, func(col, row int) bool {
		m.SetTile(layer, col, row, g)
		return true
	})
}

// eachTile visits the tiles overlapped by a pixel rectangle until fn
// returns false.
func (m *Map) eachTile(box common.Rect, fn func(col, row int) bool) {
	if box.Width <= 0 || box.Height <= 0 {
		return
	}
	c0 := floorDiv(box.X, common.TileSize)
	r0 := floorDiv(box.Y, common.TileSize)
	c1 := floorDiv(box.Right()-1, common.TileSize)
	r1 := floorDiv(box.Bottom()-1, common.TileSize)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if !fn(c, r) {
				return
			}
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// GroundAt returns the ground at a pixel. Empty tiles show the ground of
// the layer below; outside the map is a wall.
func (m *Map) GroundAt(layer Layer, x, y int) Ground {
	if x < 0 || y < 0 || x >= m.Width() || y >= m.Height() || !layer.Valid() {
		return GroundWall
	}
	col, row := x/common.TileSize, y/common.TileSize
	for l := layer; l >= LayerLow; l-- {
		if g := m.grounds[l][row*m.cols+col]; g != GroundEmpty {
			return g
		}
	}
	return GroundTraversable
}

// HasEmptyGround reports whether part of the box lies on empty tiles of
// the layer.
func (m *Map) HasEmptyGround(layer Layer, box common.Rect) bool {
	if !layer.Valid() {
		return false
	}
	found := false
	m.eachTile(box, func(col, row int) bool {
		if m.Tile(layer, col, row) == GroundEmpty {
			found = true
			return false
		}
		return true
	})
	return found
}

// IsOutside reports whether part of the box is outside the map.
func (m *Map) IsOutside(box common.Rect) bool {
	return !m.Bounds().ContainsRect(box)
}

// CollidesWithObstacles reports whether the box on a layer overlaps ground
// or an entity that the subject considers an obstacle. Leaving the map is
// always an obstacle.
func (m *Map) CollidesWithObstacles(layer Layer, box common.Rect, subject ObstacleSubject) bool {
	if m.IsOutside(box) {
		return true
	}
	blocked := false
	m.eachTile(box, func(col, row int) bool {
		g := m.GroundAt(layer, col*common.TileSize, row*common.TileSize)
		if subject.IsGroundObstacle(g) {
			blocked = true
			return false
		}
		return true
	})
	if blocked {
		return true
	}
	for _, e := range m.entities {
		if e.IsRemoved() || e.Layer() != layer {
			continue
		}
		if self, ok := subject.(Entity); ok && self == e {
			continue
		}
		if e.Bounds().Overlaps(box) && subject.IsEntityObstacle(e, box) {
			return true
		}
	}
	return false
}

// AddEntity places an entity on the map.
func (m *Map) AddEntity(e Entity) {
	if e == nil {
		return
	}
	m.entities = append(m.entities, e)
}

// RemoveEntity marks an entity as removed and drops it from the map.
func (m *Map) RemoveEntity(e Entity) bool {
	for i, other := range m.entities {
		if other != e {
			continue
		}
		if b, ok := e.(interface{ base() *Base }); ok {
			b.base().removed = true
		}
		m.entities = append(m.entities[:i], m.entities[i+1:]...)
		return true
	}
	return false
}

func (b *Base) base() *Base { return b }

// Entities returns the live entities.
func (m *Map) Entities() []Entity {
	return append([]Entity(nil), m.entities...)
}

// EntitiesOverlapping returns the entities of a layer overlapping the box.
func (m *Map) EntitiesOverlapping(layer Layer, box common.Rect) []Entity {
	var out []Entity
	for _, e := range m.entities {
		if !e.IsRemoved() && e.Layer() == layer && e.Bounds().Overlaps(box) {
			out = append(out, e)
		}
	}
	return out
}

// EntityAt returns the first entity of a layer containing a pixel.
func (m *Map) EntityAt(layer Layer, x, y int) Entity {
	for _, e := range m.entities {
		if !e.IsRemoved() && e.Layer() == layer && e.Bounds().Contains(x, y) {
			return e
		}
	}
	return nil
}

// EntityByName returns the entity with the given name, or nil.
func (m *Map) EntityByName(name string) Entity {
	for _, e := range m.entities {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

// CountKind returns how many live entities of a kind are on the map.
func (m *Map) CountKind(kind Kind) int {
	n := 0
	for _, e := range m.entities {
		if !e.IsRemoved() && e.Kind() == kind {
			n++
		}
	}
	return n
}
