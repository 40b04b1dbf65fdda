package movement

import (
	"time"

	"github.com/milk9111/hero/common"
)

// DefaultJumpDelay is the per-pixel delay of a jump without explicit speed.
const DefaultJumpDelay = 10 * time.Millisecond

// Jump moves in a direction8 over a distance while computing a parabolic
// display height.
type Jump struct {
	*Pixel

	direction8 int
	distance   int
	height     int
}

// NewJump creates a jump. A zero delay selects DefaultJumpDelay.
func NewJump(clock common.Clock, direction8, distance int, delay time.Duration, ignoreObstacles bool) *Jump {
	if delay <= 0 {
		delay = DefaultJumpDelay
	}
	dx, dy := common.Direction8Step(direction8)
	steps := make([]Step, distance)
	for i := range steps {
		steps[i] = Step{DX: dx, DY: dy}
	}
	j := &Jump{
		Pixel:      NewPixel(clock, steps, delay, false, ignoreObstacles),
		direction8: direction8,
		distance:   distance,
	}
	j.onStep = j.stepDone
	return j
}

func (j *Jump) Direction8() int { return j.direction8 }

func (j *Jump) Distance() int { return j.distance }

// Height returns the current display elevation in pixels.
func (j *Jump) Height() int {
	return j.height
}

func (j *Jump) stepDone(index int, _ bool) {
	if j.finished {
		j.height = 0
		return
	}
	done := index + 1
	maxHeight := float64(j.distance) / 2
	if maxHeight > 24 {
		maxHeight = 24
	}
	t := float64(done) / float64(j.distance)
	j.height = common.Round(4 * maxHeight * t * (1 - t))
}
