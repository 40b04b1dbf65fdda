package common

import "math"

const (
	// BaseWidth and BaseHeight are the logical sandbox resolution.
	BaseWidth  = 640
	BaseHeight = 480

	// TileSize is the grid unit of maps and paths, in pixels.
	TileSize = 8
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round converts a float coordinate to the nearest pixel.
func Round(v float64) int {
	return int(math.Round(v))
}

// Sign returns -1, 0 or 1.
func Sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
