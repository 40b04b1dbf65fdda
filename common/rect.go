package common

import "github.com/jakecoffman/cp"

// Rect is an integer pixel rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect builds a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Center returns the center point.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Overlaps reports whether both rectangles share at least one pixel.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.Right() &&
		r.Right() > other.X &&
		r.Y < other.Bottom() &&
		r.Bottom() > other.Y
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Right() <= r.Right() &&
		other.Y >= r.Y && other.Bottom() <= r.Bottom()
}

// BB converts the rectangle to a chipmunk bounding box (y grows downwards,
// so B is the top edge).
func (r Rect) BB() cp.BB {
	return cp.BB{L: float64(r.X), B: float64(r.Y), R: float64(r.Right()), T: float64(r.Bottom())}
}

// RectFromBB rounds a chipmunk bounding box back to pixels.
func RectFromBB(bb cp.BB) Rect {
	x, y := Round(bb.L), Round(bb.B)
	return Rect{X: x, Y: y, Width: Round(bb.R) - x, Height: Round(bb.T) - y}
}
