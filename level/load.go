package level

import (
	"fmt"

	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/ecs/component"
	"github.com/milk9111/hero/levels"
)

// LoadEmbedded builds a map from one of the embedded level files.
func LoadEmbedded(name string) (*Map, error) {
	data, err := levels.LoadLevelFromFS(name)
	if err != nil {
		return nil, err
	}
	return FromLevel(data)
}

// FromLevel builds a map from its file representation.
func FromLevel(data *levels.Level) (*Map, error) {
	m, err := NewMap(data.Name, data.Width, data.Height)
	if err != nil {
		return nil, err
	}
	for name, rows := range data.Layers {
		layer, err := ParseLayer(name)
		if err != nil {
			return nil, err
		}
		for row, line := range rows {
			col := 0
			for _, c := range line {
				g, ok := GroundFromChar(c)
				if !ok {
					return nil, fmt.Errorf("level: %s: unknown tile %q at %d,%d", data.Name, c, col, row)
				}
				m.SetTile(layer, col, row, g)
				col++
			}
		}
	}
	spawnLayer, err := ParseLayer(data.Spawn.Layer)
	if err != nil {
		return nil, err
	}
	m.SetSpawn(data.Spawn.X, data.Spawn.Y, spawnLayer)

	for i, ed := range data.Entities {
		e, err := entityFromData(ed)
		if err != nil {
			return nil, fmt.Errorf("level: %s: entity %d: %w", data.Name, i, err)
		}
		m.AddEntity(e)
	}
	return m, nil
}

func entityFromData(ed levels.Entity) (Entity, error) {
	layer, err := ParseLayer(ed.Layer)
	if err != nil {
		return nil, err
	}
	w, h := ed.W, ed.H
	if w <= 0 {
		w = common.TileSize * 2
	}
	if h <= 0 {
		h = common.TileSize * 2
	}
	base := NewBase(ed.Name, common.NewRect(ed.X, ed.Y, w, h), layer)
	p := props(ed.Props)

	switch Kind(ed.Type) {
	case KindStream:
		return &Stream{
			Base:        base,
			Direction8:  p.intProp("direction", 0),
			Speed:       p.floatProp("speed", 64),
			AllowAttack: p.boolProp("allow_attack", true),
			AllowItem:   p.boolProp("allow_item", true),
		}, nil
	case KindStairs:
		return &Stairs{Base: base, Direction4: p.intProp("direction", 1), InsideFloor: p.boolProp("inside_floor", false)}, nil
	case KindJumper:
		return &Jumper{Base: base, Direction8: p.intProp("direction", 6), JumpLength: p.intProp("jump_length", 16)}, nil
	case KindSensor:
		return &Sensor{Base: base}, nil
	case KindSeparator:
		return &Separator{Base: base}, nil
	case KindTeletransporter:
		return &Teletransporter{
			Base:           base,
			DestinationMap: p.stringProp("destination", ""),
			DestX:          p.intProp("dest_x", 0),
			DestY:          p.intProp("dest_y", 0),
		}, nil
	case KindSwitch:
		return &Switch{Base: base}, nil
	case KindBlock:
		return &Block{Base: base, Pushable: p.boolProp("pushable", true), Pullable: p.boolProp("pullable", false)}, nil
	case KindEnemy:
		return &Enemy{Base: base, Life: p.intProp("life", 1), Damage: p.intProp("damage", 1)}, nil
	case KindExplosion:
		return &Explosion{Base: base, Damage: p.intProp("damage", 2)}, nil
	case KindHookable:
		return &Hookable{Base: base}, nil
	}
	return nil, fmt.Errorf("unknown entity type %q", ed.Type)
}

// SpawnLiftables creates the level's liftable objects in the world.
func SpawnLiftables(w *ecs.World, data *levels.Level) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, len(data.Liftables))
	for i, ld := range data.Liftables {
		layer, err := ParseLayer(ld.Layer)
		if err != nil {
			return out, fmt.Errorf("level: %s: liftable %d: %w", data.Name, i, err)
		}
		width, height := ld.W, ld.H
		if width <= 0 {
			width = common.TileSize * 2
		}
		if height <= 0 {
			height = common.TileSize * 2
		}
		p := props(ld.Props)

		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			X: float64(ld.X), Y: float64(ld.Y), Width: width, Height: height, Layer: int(layer),
		}); err != nil {
			return out, err
		}
		if err := ecs.Add(w, e, component.LiftableComponent.Kind(), &component.Liftable{
			Name:             ld.Name,
			Weight:           p.intProp("weight", 0),
			Damage:           p.intProp("damage", 1),
			DestructionSound: p.stringProp("destruction_sound", ""),
		}); err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}

// props reads loosely typed JSON properties.
type props map[string]interface{}

func (p props) floatProp(key string, def float64) float64 {
	if v, ok := p[key].(float64); ok {
		return v
	}
	return def
}

func (p props) intProp(key string, def int) int {
	if v, ok := p[key].(float64); ok {
		return int(v)
	}
	return def
}

func (p props) boolProp(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

func (p props) stringProp(key string, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}
