package level

import "github.com/milk9111/hero/common"

// Kind identifies the type of a map entity.
type Kind string

const (
	KindStream          Kind = "stream"
	KindStairs          Kind = "stairs"
	KindJumper          Kind = "jumper"
	KindSensor          Kind = "sensor"
	KindSeparator       Kind = "separator"
	KindTeletransporter Kind = "teletransporter"
	KindSwitch          Kind = "switch"
	KindBlock           Kind = "block"
	KindEnemy           Kind = "enemy"
	KindExplosion       Kind = "explosion"
	KindHookable        Kind = "hookable"
)

// Entity is a dynamic object placed on a map.
type Entity interface {
	Kind() Kind
	Name() string
	Bounds() common.Rect
	Layer() Layer
	SetLayer(l Layer)
	Position() (x, y int)
	IsRemoved() bool
}

// Base implements the common part of every map entity.
type Base struct {
	name    string
	box     common.Rect
	layer   Layer
	removed bool
}

func NewBase(name string, box common.Rect, layer Layer) Base {
	return Base{name: name, box: box, layer: layer}
}

func (b *Base) Name() string         { return b.name }
func (b *Base) Bounds() common.Rect  { return b.box }
func (b *Base) Layer() Layer         { return b.layer }
func (b *Base) SetLayer(l Layer)     { b.layer = l }
func (b *Base) Position() (int, int) { return b.box.X, b.box.Y }
func (b *Base) IsRemoved() bool      { return b.removed }

// SetPosition moves the entity's top-left corner.
func (b *Base) SetPosition(x, y int) {
	b.box.X, b.box.Y = x, y
}

// Stream is a current that carries the hero along a direction.
type Stream struct {
	Base
	Direction8  int
	Speed       float64
	AllowAttack bool
	AllowItem   bool
}

func (*Stream) Kind() Kind { return KindStream }

// Center returns the position the hero snaps to before riding.
func (s *Stream) Center() (int, int) {
	return s.box.Center()
}

// Stairs connect two floors or go up inside a single floor.
type Stairs struct {
	Base
	Direction4  int
	InsideFloor bool
}

func (*Stairs) Kind() Kind { return KindStairs }

// Jumper makes the hero jump when walked into along its direction.
type Jumper struct {
	Base
	Direction8 int
	JumpLength int
}

func (*Jumper) Kind() Kind { return KindJumper }

// IsDiagonal reports whether the jump direction is diagonal.
func (j *Jumper) IsDiagonal() bool { return common.IsDiagonal(j.Direction8) }

// Sensor triggers game logic when the hero walks on it.
type Sensor struct {
	Base
	Activated bool
}

func (*Sensor) Kind() Kind { return KindSensor }

// Separator splits a map into camera regions.
type Separator struct {
	Base
}

func (*Separator) Kind() Kind { return KindSeparator }

// Teletransporter moves the hero to a destination when walked on.
type Teletransporter struct {
	Base
	DestinationMap string
	DestX, DestY   int
}

func (*Teletransporter) Kind() Kind { return KindTeletransporter }

// Switch is pressed by the hero walking on it.
type Switch struct {
	Base
	Activated bool
}

func (*Switch) Kind() Kind { return KindSwitch }

// Block can be pushed or pulled by the hero.
type Block struct {
	Base
	Pushable bool
	Pullable bool
}

func (*Block) Kind() Kind { return KindBlock }

// IsGroundObstacle stops a moving block on walls and low walls.
func (b *Block) IsGroundObstacle(g Ground) bool {
	return Solid{}.IsGroundObstacle(g)
}

// IsEntityObstacle stops a moving block on other blocks and on enemies.
func (b *Block) IsEntityObstacle(e Entity, _ common.Rect) bool {
	switch e.Kind() {
	case KindBlock, KindEnemy, KindHookable:
		return true
	}
	return false
}

// Enemy hurts the hero on contact.
type Enemy struct {
	Base
	Life   int
	Damage int
}

func (*Enemy) Kind() Kind { return KindEnemy }

// IsAlive reports whether the enemy still has life.
func (e *Enemy) IsAlive() bool { return e.Life > 0 && !e.removed }

// Explosion hurts whatever it overlaps.
type Explosion struct {
	Base
	Damage int
}

func (*Explosion) Kind() Kind { return KindExplosion }

// Hookable is something the hookshot can attach to.
type Hookable struct {
	Base
}

func (*Hookable) Kind() Kind { return KindHookable }

// ObstacleSubject answers whether grounds and entities block it. The hero
// delegates these answers to its current state.
type ObstacleSubject interface {
	IsGroundObstacle(g Ground) bool
	IsEntityObstacle(e Entity, candidate common.Rect) bool
}

// Solid is an ObstacleSubject for plain objects: walls, low walls and
// blocks stop them, everything else does not.
type Solid struct {
	// IgnoreLowWalls lets flying objects pass over low walls.
	IgnoreLowWalls bool
}

func (s Solid) IsGroundObstacle(g Ground) bool {
	switch g {
	case GroundWall:
		return true
	case GroundLowWall:
		return !s.IgnoreLowWalls
	}
	return false
}

func (Solid) IsEntityObstacle(e Entity, _ common.Rect) bool {
	return e.Kind() == KindBlock
}
