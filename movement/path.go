package movement

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/hero/common"
)

var ErrInvalidPath = errors.New("movement: invalid path")

// PathStepLength is the distance covered by one direction character.
const PathStepLength = common.TileSize

// Path follows a string of direction8 characters ('0' to '7'), each one
// moving PathStepLength pixels.
type Path struct {
	*Pixel

	path  string
	speed float64
}

// NewPath creates a path movement. Speed is in pixels per second.
func NewPath(clock common.Clock, path string, speed float64, loop, ignoreObstacles bool) (*Path, error) {
	steps, err := pathTrajectory(path)
	if err != nil {
		return nil, err
	}
	p := &Path{
		Pixel: NewPixel(clock, steps, speedDelay(speed), loop, ignoreObstacles),
		path:  path,
		speed: speed,
	}
	return p, nil
}

func pathTrajectory(path string) ([]Step, error) {
	steps := make([]Step, 0, len(path)*PathStepLength)
	for i, c := range path {
		if c < '0' || c > '7' {
			return nil, fmt.Errorf("%w: character %q at %d", ErrInvalidPath, c, i)
		}
		dx, dy := common.Direction8Step(int(c - '0'))
		for j := 0; j < PathStepLength; j++ {
			steps = append(steps, Step{DX: dx, DY: dy})
		}
	}
	return steps, nil
}

func speedDelay(speed float64) time.Duration {
	if speed <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / speed)
}

// Path returns the direction string.
func (p *Path) Path() string { return p.path }

func (p *Path) Speed() float64 { return p.speed }

// CurrentDirection returns the direction8 of the step in progress, or
// common.NoDirection when finished.
func (p *Path) CurrentDirection() int {
	if p.finished || len(p.path) == 0 {
		return common.NoDirection
	}
	i := p.index / PathStepLength
	if i >= len(p.path) {
		i = len(p.path) - 1
	}
	return int(p.path[i] - '0')
}
