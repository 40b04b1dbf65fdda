package movement

import (
	"time"

	"github.com/milk9111/hero/common"
)

// TargetRecomputeDelay is how often a Target re-aims at its destination.
const TargetRecomputeDelay = 150 * time.Millisecond

// Target moves straight towards a point or a moving entity and stops exactly
// on it.
type Target struct {
	*Straight

	target           Positioned
	offsetX, offsetY int
	targetX, targetY int
	signX, signY     int
	movingSpeed      float64
	recompute        common.Countdown
	done             bool
}

// NewTarget creates a movement towards the fixed point (x, y).
func NewTarget(clock common.Clock, x, y int, speed float64, ignoreObstacles bool) *Target {
	t := &Target{
		Straight:    NewStraight(clock, 0, 0, ignoreObstacles),
		targetX:     x,
		targetY:     y,
		movingSpeed: speed,
	}
	t.Straight.SetFinishOnObstacle(false)
	return t
}

// NewTargetEntity creates a movement towards a possibly moving entity plus
// an offset.
func NewTargetEntity(clock common.Clock, target Positioned, offsetX, offsetY int, speed float64, ignoreObstacles bool) *Target {
	t := NewTarget(clock, 0, 0, speed, ignoreObstacles)
	t.target = target
	t.offsetX, t.offsetY = offsetX, offsetY
	return t
}

func (t *Target) Attach(m Mover) {
	t.Straight.Attach(m)
	t.done = false
	t.recomputeMovement()
	t.recompute.Start(t.clock.Now(), TargetRecomputeDelay)
}

// SetTarget changes the destination to a fixed point.
func (t *Target) SetTarget(x, y int) {
	t.target = nil
	t.targetX, t.targetY = x, y
	t.recomputeMovement()
	t.recompute.Start(t.clock.Now(), TargetRecomputeDelay)
}

// Destination returns the current target point.
func (t *Target) Destination() (int, int) {
	return t.targetX, t.targetY
}

func (t *Target) IsFinished() bool {
	return t.done
}

func (t *Target) Update() {
	if t.mover == nil || t.IsSuspended() || t.done {
		return
	}
	if r, ok := t.target.(Removable); ok && r.IsRemoved() {
		t.target = nil
	}
	now := t.clock.Now()
	if t.recompute.Expired(now) {
		t.recomputeMovement()
		t.recompute.Extend(TargetRecomputeDelay)
	}

	x, y := t.position()
	dx, dy := t.targetX-x, t.targetY-y
	if dx*t.signX <= 0 && dy*t.signY <= 0 {
		if !t.testObstacles(dx, dy) {
			t.mover.SetPosition(t.targetX, t.targetY)
			t.Straight.Stop()
			t.done = true
			return
		}
	}
	t.Straight.Update()
}

func (t *Target) recomputeMovement() {
	if t.target != nil {
		tx, ty := t.target.Position()
		t.targetX, t.targetY = tx+t.offsetX, ty+t.offsetY
	}
	x, y := t.position()
	if x == t.targetX && y == t.targetY {
		t.signX, t.signY = 0, 0
		return
	}
	t.done = false
	t.signX, t.signY = 1, 1
	if t.targetX-x < 0 {
		t.signX = -1
	}
	if t.targetY-y < 0 {
		t.signY = -1
	}
	angle := common.AngleTo(x, y, t.targetX, t.targetY)
	if d := angle - t.Straight.Angle(); d > 1e-6 || d < -1e-6 || t.Straight.Speed() < 1e-6 {
		t.Straight.SetSpeed(t.movingSpeed)
		t.Straight.SetAngle(angle)
		t.Straight.SetMaxDistance(common.Round(common.Distance(x, y, t.targetX, t.targetY)))
	}
}

func (t *Target) SetSuspended(suspended bool) {
	now := t.clock.Now()
	t.Straight.SetSuspended(suspended)
	t.recompute.SetSuspended(suspended, now)
}
