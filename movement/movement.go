// Package movement provides steppable position updates driven by the
// simulated clock. A movement controls one Mover at a time and never calls
// back into game logic: owners poll IsFinished.
package movement

import (
	"github.com/milk9111/hero/common"
)

// Mover is the object a movement controls.
type Mover interface {
	Position() (x, y int)
	SetPosition(x, y int)
	// TestObstacles reports whether translating by (dx, dy) would collide.
	TestObstacles(dx, dy int) bool
	NotifyObstacleReached()
}

// Positioned is anything with a position, such as a followed entity.
type Positioned interface {
	Position() (x, y int)
}

// Removable is implemented by targets that can disappear from the map.
type Removable interface {
	IsRemoved() bool
}

// Movement is a steppable position update.
type Movement interface {
	Attach(m Mover)
	Mover() Mover
	Update()
	IsFinished() bool
	IsSuspended() bool
	SetSuspended(suspended bool)
	Stop()
	ObstaclesIgnored() bool
	SetIgnoreObstacles(ignore bool)
}

// base holds the state shared by every movement kind.
type base struct {
	clock            common.Clock
	mover            Mover
	pause            common.Suspension
	ignoreObstacles  bool
	finished         bool
	lastBlocked      bool
	obstacleReachedN int
}

func newBase(clock common.Clock, ignoreObstacles bool) base {
	return base{clock: clock, ignoreObstacles: ignoreObstacles}
}

func (b *base) Mover() Mover {
	return b.mover
}

func (b *base) IsFinished() bool {
	return b.finished
}

func (b *base) IsSuspended() bool {
	return b.pause.Suspended()
}

func (b *base) ObstaclesIgnored() bool {
	return b.ignoreObstacles
}

func (b *base) SetIgnoreObstacles(ignore bool) {
	b.ignoreObstacles = ignore
}

// ObstacleReachedCount returns how many steps were blocked so far.
func (b *base) ObstacleReachedCount() int {
	return b.obstacleReachedN
}

func (b *base) position() (int, int) {
	if b.mover == nil {
		return 0, 0
	}
	return b.mover.Position()
}

// translate moves the mover by (dx, dy) unless an obstacle is in the way.
func (b *base) translate(dx, dy int) bool {
	if b.mover == nil {
		return false
	}
	if dx == 0 && dy == 0 {
		return true
	}
	if !b.ignoreObstacles && b.mover.TestObstacles(dx, dy) {
		b.lastBlocked = true
		b.obstacleReachedN++
		b.mover.NotifyObstacleReached()
		return false
	}
	b.lastBlocked = false
	x, y := b.mover.Position()
	b.mover.SetPosition(x+dx, y+dy)
	return true
}

// testObstacles reports whether a translation is blocked, honoring the
// ignore flag.
func (b *base) testObstacles(dx, dy int) bool {
	if b.mover == nil || b.ignoreObstacles {
		return false
	}
	return b.mover.TestObstacles(dx, dy)
}

var (
	_ Movement = (*Straight)(nil)
	_ Movement = (*Target)(nil)
	_ Movement = (*Pixel)(nil)
	_ Movement = (*Path)(nil)
	_ Movement = (*Jump)(nil)
	_ Movement = (*Follow)(nil)
)
