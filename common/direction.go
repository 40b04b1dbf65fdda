package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Directions are numbered counter-clockwise from east. Direction8 values run
// 0..7 (east, north-east, north, ...); direction4 values run 0..3 (east,
// north, west, south). -1 means no direction.
const NoDirection = -1

var direction8Steps = [8][2]int{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

// Direction8Step returns the unit pixel step of a direction8.
func Direction8Step(direction8 int) (dx, dy int) {
	if direction8 < 0 || direction8 > 7 {
		return 0, 0
	}
	s := direction8Steps[direction8]
	return s[0], s[1]
}

// Direction4Step returns the unit pixel step of a direction4.
func Direction4Step(direction4 int) (dx, dy int) {
	return Direction8Step(direction4 * 2)
}

// Direction8Angle returns the angle in radians of a direction8, with y
// pointing up.
func Direction8Angle(direction8 int) float64 {
	return float64(direction8) * math.Pi / 4
}

// Direction8Vector returns the screen-space unit vector of a direction8.
func Direction8Vector(direction8 int) cp.Vector {
	if direction8 < 0 || direction8 > 7 {
		return cp.Vector{}
	}
	v := cp.ForAngle(Direction8Angle(direction8))
	return cp.Vector{X: v.X, Y: -v.Y}
}

// AngleTo returns the angle in radians from (x1, y1) to (x2, y2) in screen
// coordinates, with y pointing up as for Direction8Angle.
func AngleTo(x1, y1, x2, y2 int) float64 {
	return math.Atan2(float64(y1-y2), float64(x2-x1))
}

// Distance returns the euclidean distance between two points.
func Distance(x1, y1, x2, y2 int) float64 {
	a := cp.Vector{X: float64(x1), Y: float64(y1)}
	return a.Distance(cp.Vector{X: float64(x2), Y: float64(y2)})
}

// IsDiagonal reports whether a direction8 is diagonal.
func IsDiagonal(direction8 int) bool {
	return direction8 >= 0 && direction8%2 == 1
}

// Opposite8 returns the opposite direction8.
func Opposite8(direction8 int) int {
	if direction8 < 0 {
		return NoDirection
	}
	return (direction8 + 4) % 8
}

// Opposite4 returns the opposite direction4.
func Opposite4(direction4 int) int {
	if direction4 < 0 {
		return NoDirection
	}
	return (direction4 + 2) % 4
}
