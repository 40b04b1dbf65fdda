package level

import (
	"testing"

	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/ecs/component"
	"github.com/milk9111/hero/levels"
)

func newTestMap(t *testing.T) *Map {
	t.Helper()
	m, err := NewMap("test", 10, 10)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	return m
}

func TestGroundAtLooksThroughEmptyTiles(t *testing.T) {
	m := newTestMap(t)
	m.SetTile(LayerLow, 1, 1, GroundShallowWater)
	m.SetTile(LayerIntermediate, 2, 1, GroundWall)

	cases := []struct {
		name  string
		layer Layer
		x, y  int
		want  Ground
	}{
		{"low_direct", LayerLow, 9, 9, GroundShallowWater},
		{"intermediate_empty_shows_low", LayerIntermediate, 9, 9, GroundShallowWater},
		{"intermediate_own_tile", LayerIntermediate, 17, 9, GroundWall},
		{"high_shows_intermediate", LayerHigh, 17, 9, GroundWall},
		{"outside", LayerLow, -1, 0, GroundWall},
		{"outside_far", LayerLow, 80, 0, GroundWall},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := m.GroundAt(c.layer, c.x, c.y); got != c.want {
				t.Fatalf("GroundAt = %v, want %v", got, c.want)
			}
		})
	}
}

type deepWaterSubject struct{ Solid }

func (deepWaterSubject) IsGroundObstacle(g Ground) bool {
	return g == GroundWall || g == GroundDeepWater
}

func TestCollidesWithObstacles(t *testing.T) {
	m := newTestMap(t)
	m.Fill(LayerLow, common.NewRect(32, 0, 8, 80), GroundWall)
	m.Fill(LayerLow, common.NewRect(48, 48, 16, 16), GroundDeepWater)
	block := &Block{Base: NewBase("block", common.NewRect(0, 56, 16, 16), LayerLow)}
	m.AddEntity(block)

	cases := []struct {
		name    string
		box     common.Rect
		subject ObstacleSubject
		want    bool
	}{
		{"free", common.NewRect(0, 0, 16, 16), Solid{}, false},
		{"wall", common.NewRect(24, 0, 16, 16), Solid{}, true},
		{"outside", common.NewRect(-1, 0, 16, 16), Solid{}, true},
		{"deep_water_for_solid", common.NewRect(48, 48, 8, 8), Solid{}, false},
		{"deep_water_for_swimmer_averse", common.NewRect(48, 48, 8, 8), deepWaterSubject{}, true},
		{"block", common.NewRect(8, 60, 8, 8), Solid{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := m.CollidesWithObstacles(LayerLow, c.box, c.subject); got != c.want {
				t.Fatalf("CollidesWithObstacles = %v, want %v", got, c.want)
			}
		})
	}

	if !m.RemoveEntity(block) || !block.IsRemoved() {
		t.Fatalf("expected block removed")
	}
	if m.CollidesWithObstacles(LayerLow, common.NewRect(8, 60, 8, 8), Solid{}) {
		t.Fatalf("removed block should not collide")
	}
}

func TestHasEmptyGround(t *testing.T) {
	m := newTestMap(t)
	m.Fill(LayerIntermediate, common.NewRect(0, 0, 16, 16), GroundTraversable)

	if m.HasEmptyGround(LayerIntermediate, common.NewRect(0, 0, 16, 16)) {
		t.Fatalf("box fully on the platform")
	}
	if !m.HasEmptyGround(LayerIntermediate, common.NewRect(8, 8, 16, 16)) {
		t.Fatalf("box partly off the platform")
	}
	if m.HasEmptyGround(LayerLow, common.NewRect(8, 8, 16, 16)) {
		t.Fatalf("low layer has no empty tiles")
	}
}

func TestLoadEmbeddedSandbox(t *testing.T) {
	m, err := LoadEmbedded("sandbox.json")
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}
	x, y, layer := m.Spawn()
	if layer != LayerLow {
		t.Fatalf("expected low spawn layer, got %v", layer)
	}
	if g := m.GroundAt(LayerLow, x+32, y); g != GroundShallowWater {
		t.Fatalf("expected shallow water 32px east of spawn, got %v", g)
	}
	if m.CountKind(KindStream) != 1 || m.CountKind(KindEnemy) != 1 {
		t.Fatalf("unexpected entities: %d streams, %d enemies", m.CountKind(KindStream), m.CountKind(KindEnemy))
	}
	if _, ok := m.EntityByName("current").(*Stream); !ok {
		t.Fatalf("expected the current to be a stream")
	}
}

func TestSpawnLiftables(t *testing.T) {
	data, err := levels.LoadLevelFromFS("sandbox.json")
	if err != nil {
		t.Fatalf("LoadLevelFromFS: %v", err)
	}
	w := ecs.NewWorld()
	spawned, err := SpawnLiftables(w, data)
	if err != nil {
		t.Fatalf("SpawnLiftables: %v", err)
	}
	if len(spawned) != len(data.Liftables) || len(spawned) == 0 {
		t.Fatalf("spawned %d of %d liftables", len(spawned), len(data.Liftables))
	}
	l, ok := ecs.Get(w, spawned[0], component.LiftableComponent.Kind())
	if !ok || l.Name != "pot" || l.DestructionSound != "stone" {
		t.Fatalf("first liftable = %+v, %v", l, ok)
	}
	tr, ok := ecs.Get(w, spawned[0], component.TransformComponent.Kind())
	if !ok || tr.X != 40 || tr.Y != 64 || tr.Width != 16 {
		t.Fatalf("first transform = %+v, %v", tr, ok)
	}
	if got := ecs.RefCount(w, spawned[0]); got != 1 {
		t.Fatalf("refcount = %d, want the world's reference only", got)
	}

	bad := &levels.Level{Name: "bad", Liftables: []levels.Entity{{Name: "pot", Layer: "roof"}}}
	if _, err := SpawnLiftables(ecs.NewWorld(), bad); err == nil {
		t.Fatalf("expected an error for an unknown layer")
	}
}
