package movement

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hero/common"
)

// Straight moves in a fixed direction at a fixed speed, one pixel at a time
// on each axis.
type Straight struct {
	base

	velocity cp.Vector // pixels per second, y grows downwards
	speed    float64
	angle    float64

	delayX, delayY time.Duration
	nextX, nextY   time.Duration

	initialX, initialY int
	maxDistance        int
	finishOnObstacle   bool
}

// NewStraight creates a straight movement. Speed is in pixels per second and
// the angle in radians, counter-clockwise from east.
func NewStraight(clock common.Clock, speed, angle float64, ignoreObstacles bool) *Straight {
	s := &Straight{base: newBase(clock, ignoreObstacles)}
	s.speed = speed
	s.angle = angle
	s.updateVelocity()
	return s
}

func (s *Straight) Attach(m Mover) {
	s.mover = m
	s.initialX, s.initialY = s.position()
	s.finished = false
	s.updateVelocity()
}

// Speed returns the speed in pixels per second.
func (s *Straight) Speed() float64 { return s.speed }

// Angle returns the direction in radians.
func (s *Straight) Angle() float64 { return s.angle }

// Velocity returns the velocity vector in pixels per second.
func (s *Straight) Velocity() cp.Vector { return s.velocity }

func (s *Straight) SetSpeed(speed float64) {
	s.speed = speed
	s.updateVelocity()
}

func (s *Straight) SetAngle(angle float64) {
	s.angle = angle
	s.updateVelocity()
}

// SetMaxDistance makes the movement finish after travelling that many
// pixels from where it was attached. Zero means no limit.
func (s *Straight) SetMaxDistance(distance int) {
	s.maxDistance = distance
	s.initialX, s.initialY = s.position()
	s.finished = false
}

func (s *Straight) SetFinishOnObstacle(finish bool) {
	s.finishOnObstacle = finish
}

// IsStarted reports whether the movement has a non-zero speed.
func (s *Straight) IsStarted() bool {
	return s.speed > 0 && !s.finished
}

func (s *Straight) Stop() {
	s.speed = 0
	s.updateVelocity()
}

func (s *Straight) updateVelocity() {
	if s.speed <= 0 {
		s.velocity = cp.Vector{}
	} else {
		v := cp.ForAngle(s.angle).Mult(s.speed)
		s.velocity = cp.Vector{X: v.X, Y: -v.Y}
	}
	now := s.clock.Now()
	s.delayX = axisDelay(s.velocity.X)
	s.delayY = axisDelay(s.velocity.Y)
	s.nextX = now + s.delayX
	s.nextY = now + s.delayY
}

// axisDelay returns the time to travel one pixel at the given axis speed.
func axisDelay(v float64) time.Duration {
	v = math.Abs(v)
	if v < 1e-6 {
		return 0
	}
	return time.Duration(float64(time.Second) / v)
}

func (s *Straight) Update() {
	if s.mover == nil || s.IsSuspended() || s.finished || s.speed <= 0 {
		return
	}
	now := s.clock.Now()
	dirX := common.Sign(common.Round(s.velocity.X * 1e6))
	dirY := common.Sign(common.Round(s.velocity.Y * 1e6))
	for !s.finished {
		xDue := s.delayX > 0 && now >= s.nextX
		yDue := s.delayY > 0 && now >= s.nextY
		if !xDue && !yDue {
			return
		}
		// Move first on the axis whose date comes first.
		if xDue && (!yDue || s.nextX <= s.nextY) {
			s.step(dirX, 0)
			s.nextX += s.delayX
		} else {
			s.step(0, dirY)
			s.nextY += s.delayY
		}
		if s.maxDistance > 0 {
			x, y := s.position()
			if common.Distance(s.initialX, s.initialY, x, y) >= float64(s.maxDistance) {
				s.finished = true
				s.Stop()
			}
		}
	}
}

func (s *Straight) step(dx, dy int) {
	if !s.translate(dx, dy) && s.finishOnObstacle {
		s.finished = true
		s.Stop()
	}
}

func (s *Straight) SetSuspended(suspended bool) {
	shift, changed := s.pause.Set(suspended, s.clock.Now())
	if changed && !suspended {
		s.nextX += shift
		s.nextY += shift
	}
}
