package common

import (
	"math"
	"testing"
)

func TestRectOverlaps(t *testing.T) {
	base := NewRect(0, 0, 16, 16)
	cases := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"same", NewRect(0, 0, 16, 16), true},
		{"inside", NewRect(4, 4, 2, 2), true},
		{"touching_right_edge", NewRect(16, 0, 8, 8), false},
		{"touching_bottom_edge", NewRect(0, 16, 8, 8), false},
		{"one_pixel", NewRect(15, 15, 8, 8), true},
		{"far", NewRect(100, 100, 8, 8), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := base.Overlaps(c.other); got != c.want {
				t.Fatalf("Overlaps(%v) = %v, want %v", c.other, got, c.want)
			}
		})
	}
}

func TestRectBBRoundTrip(t *testing.T) {
	r := NewRect(8, 24, 16, 8)
	if got := RectFromBB(r.BB()); got != r {
		t.Fatalf("expected %v, got %v", r, got)
	}
}

func TestDirection8(t *testing.T) {
	cases := []struct {
		dir    int
		dx, dy int
	}{
		{0, 1, 0},
		{1, 1, -1},
		{2, 0, -1},
		{4, -1, 0},
		{6, 0, 1},
		{7, 1, 1},
		{NoDirection, 0, 0},
	}
	for _, c := range cases {
		dx, dy := Direction8Step(c.dir)
		if dx != c.dx || dy != c.dy {
			t.Fatalf("direction %d: got (%d,%d) want (%d,%d)", c.dir, dx, dy, c.dx, c.dy)
		}
		if c.dir < 0 {
			continue
		}
		v := Direction8Vector(c.dir)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("direction %d: vector not normalized: %v", c.dir, v)
		}
		if Sign(Round(v.X*2)) != c.dx || Sign(Round(v.Y*2)) != c.dy {
			t.Fatalf("direction %d: vector %v disagrees with step", c.dir, v)
		}
	}
	if Opposite8(1) != 5 || Opposite4(3) != 1 {
		t.Fatalf("unexpected opposite directions")
	}
}
