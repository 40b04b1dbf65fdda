// Package level is the collision oracle of a map: ground kinds on a tile
// grid per layer, dynamic map entities and obstacle queries.
package level

import (
	"fmt"
	"strings"
)

// Ground is the terrain kind of a tile.
type Ground int

const (
	GroundEmpty Ground = iota
	GroundTraversable
	GroundWall
	GroundLowWall
	GroundShallowWater
	GroundDeepWater
	GroundGrass
	GroundHole
	GroundIce
	GroundLadder
	GroundPrickles
	GroundLava
)

var groundNames = [...]string{
	GroundEmpty:        "empty",
	GroundTraversable:  "traversable",
	GroundWall:         "wall",
	GroundLowWall:      "low_wall",
	GroundShallowWater: "shallow_water",
	GroundDeepWater:    "deep_water",
	GroundGrass:        "grass",
	GroundHole:         "hole",
	GroundIce:          "ice",
	GroundLadder:       "ladder",
	GroundPrickles:     "prickles",
	GroundLava:         "lava",
}

func (g Ground) String() string {
	if g < 0 || int(g) >= len(groundNames) {
		return fmt.Sprintf("ground(%d)", int(g))
	}
	return groundNames[g]
}

// IsSolid reports whether the hero can stand on the ground without any
// special effect, which makes it a valid "last solid ground" position.
func (g Ground) IsSolid() bool {
	switch g {
	case GroundTraversable, GroundGrass, GroundLadder, GroundEmpty:
		return true
	}
	return false
}

// ParseGround converts a ground name.
func ParseGround(name string) (Ground, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range groundNames {
		if n == name {
			return Ground(i), nil
		}
	}
	return GroundEmpty, fmt.Errorf("level: unknown ground %q", name)
}

// Legend characters used by map files, one per tile.
var groundChars = map[rune]Ground{
	' ': GroundEmpty,
	'.': GroundTraversable,
	'#': GroundWall,
	'l': GroundLowWall,
	'~': GroundShallowWater,
	'W': GroundDeepWater,
	'g': GroundGrass,
	'o': GroundHole,
	'i': GroundIce,
	'H': GroundLadder,
	'^': GroundPrickles,
	'L': GroundLava,
}

// GroundFromChar decodes one map file tile character.
func GroundFromChar(c rune) (Ground, bool) {
	g, ok := groundChars[c]
	return g, ok
}

// Layer is an elevation band.
type Layer int

const (
	LayerLow Layer = iota
	LayerIntermediate
	LayerHigh

	LayerCount = 3
)

func (l Layer) String() string {
	switch l {
	case LayerLow:
		return "low"
	case LayerIntermediate:
		return "intermediate"
	case LayerHigh:
		return "high"
	}
	return fmt.Sprintf("layer(%d)", int(l))
}

// Valid reports whether the layer exists.
func (l Layer) Valid() bool {
	return l >= LayerLow && l < LayerCount
}

// ParseLayer converts a layer name. An empty name is the low layer.
func ParseLayer(name string) (Layer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "low":
		return LayerLow, nil
	case "intermediate":
		return LayerIntermediate, nil
	case "high":
		return LayerHigh, nil
	}
	return LayerLow, fmt.Errorf("level: unknown layer %q", name)
}
