package movement

import (
	"errors"
	"testing"
	"time"

	"github.com/milk9111/hero/common"
)

type fakeMover struct {
	x, y     int
	wallX    int // any x >= wallX is blocked when > 0
	obstacle int
}

func (m *fakeMover) Position() (int, int) { return m.x, m.y }

func (m *fakeMover) SetPosition(x, y int) { m.x, m.y = x, y }

func (m *fakeMover) TestObstacles(dx, dy int) bool {
	return m.wallX > 0 && m.x+dx >= m.wallX
}

func (m *fakeMover) NotifyObstacleReached() { m.obstacle++ }

type fakeTarget struct {
	x, y    int
	removed bool
}

func (t *fakeTarget) Position() (int, int) { return t.x, t.y }

func (t *fakeTarget) IsRemoved() bool { return t.removed }

func run(clock *common.StepClock, m Movement, ticks int) {
	for i := 0; i < ticks; i++ {
		clock.Step()
		m.Update()
	}
}

func TestStraightMaxDistance(t *testing.T) {
	clock := common.NewStepClock(10 * time.Millisecond)
	mover := &fakeMover{}
	s := NewStraight(clock, 100, 0, false)
	s.Attach(mover)
	s.SetMaxDistance(16)

	run(clock, s, 100)
	if !s.IsFinished() {
		t.Fatalf("expected finished")
	}
	if mover.x != 16 || mover.y != 0 {
		t.Fatalf("expected (16,0), got (%d,%d)", mover.x, mover.y)
	}
}

func TestStraightObstacle(t *testing.T) {
	clock := common.NewStepClock(10 * time.Millisecond)
	mover := &fakeMover{wallX: 5}
	s := NewStraight(clock, 100, 0, false)
	s.SetFinishOnObstacle(true)
	s.Attach(mover)

	run(clock, s, 20)
	if mover.x != 4 {
		t.Fatalf("expected to stop at x=4, got %d", mover.x)
	}
	if !s.IsFinished() || mover.obstacle != 1 {
		t.Fatalf("expected one obstacle notification and finish, got %d finished=%v", mover.obstacle, s.IsFinished())
	}
}

func TestStraightSuspendedDoesNotMove(t *testing.T) {
	clock := common.NewStepClock(10 * time.Millisecond)
	mover := &fakeMover{}
	s := NewStraight(clock, 100, 0, false)
	s.Attach(mover)

	run(clock, s, 5)
	x := mover.x
	s.SetSuspended(true)
	run(clock, s, 50)
	if mover.x != x {
		t.Fatalf("moved while suspended: %d -> %d", x, mover.x)
	}
	s.SetSuspended(false)
	clock.Step()
	s.Update()
	if mover.x != x+1 {
		t.Fatalf("expected one pixel after resume without catch-up, got %d -> %d", x, mover.x)
	}
}

func TestTargetReachesPoint(t *testing.T) {
	cases := []struct {
		name   string
		tx, ty int
	}{
		{"east", 20, 0},
		{"diagonal", 13, -7},
		{"west_south", -9, 30},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clock := common.NewStepClock(10 * time.Millisecond)
			mover := &fakeMover{}
			m := NewTarget(clock, c.tx, c.ty, 120, false)
			m.Attach(mover)
			run(clock, m, 200)
			if !m.IsFinished() {
				t.Fatalf("expected finished")
			}
			if mover.x != c.tx || mover.y != c.ty {
				t.Fatalf("expected (%d,%d), got (%d,%d)", c.tx, c.ty, mover.x, mover.y)
			}
		})
	}
}

func TestTargetFollowsMovingEntity(t *testing.T) {
	clock := common.NewStepClock(10 * time.Millisecond)
	mover := &fakeMover{}
	target := &fakeTarget{x: 40}
	m := NewTargetEntity(clock, target, 0, 8, 200, false)
	m.Attach(mover)

	run(clock, m, 5)
	target.x = 10
	run(clock, m, 200)
	if !m.IsFinished() || mover.x != 10 || mover.y != 8 {
		t.Fatalf("expected (10,8) finished, got (%d,%d) finished=%v", mover.x, mover.y, m.IsFinished())
	}
}

func TestPathTrajectory(t *testing.T) {
	clock := common.NewStepClock(10 * time.Millisecond)
	mover := &fakeMover{}
	p, err := NewPath(clock, "06", 1000, false, false)
	if err != nil {
		t.Fatalf("NewPath: %v", err)
	}
	if p.Len() != 2*PathStepLength {
		t.Fatalf("expected %d steps, got %d", 2*PathStepLength, p.Len())
	}
	p.Attach(mover)
	run(clock, p, 10)
	if !p.IsFinished() || mover.x != 8 || mover.y != 8 {
		t.Fatalf("expected (8,8) finished, got (%d,%d)", mover.x, mover.y)
	}

	if _, err := NewPath(clock, "09", 10, false, false); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath for invalid direction, got %v", err)
	}
}

func TestPixelSuspensionShift(t *testing.T) {
	clock := common.NewStepClock(10 * time.Millisecond)
	mover := &fakeMover{}
	p := NewPixel(clock, []Step{{1, 0}, {1, 0}}, 100*time.Millisecond, false, false)
	p.Attach(mover)

	run(clock, p, 5)
	p.SetSuspended(true)
	run(clock, p, 30)
	p.SetSuspended(false)
	run(clock, p, 4)
	if mover.x != 0 {
		t.Fatalf("first step should still be 10ms away, got x=%d", mover.x)
	}
	run(clock, p, 1)
	if mover.x != 1 {
		t.Fatalf("expected first step after exactly the remaining delay, got x=%d", mover.x)
	}
}

func TestJump(t *testing.T) {
	clock := common.NewStepClock(10 * time.Millisecond)
	mover := &fakeMover{}
	j := NewJump(clock, 0, 32, 0, false)
	j.Attach(mover)

	maxHeight := 0
	for i := 0; i < 40 && !j.IsFinished(); i++ {
		clock.Step()
		j.Update()
		if j.Height() > maxHeight {
			maxHeight = j.Height()
		}
	}
	if !j.IsFinished() || mover.x != 32 || mover.y != 0 {
		t.Fatalf("expected landing at (32,0), got (%d,%d) finished=%v", mover.x, mover.y, j.IsFinished())
	}
	if maxHeight != 16 || j.Height() != 0 {
		t.Fatalf("expected apex 16 and landing height 0, got %d and %d", maxHeight, j.Height())
	}
}

func TestFollow(t *testing.T) {
	clock := common.NewStepClock(10 * time.Millisecond)
	mover := &fakeMover{}
	target := &fakeTarget{x: 5, y: 5}
	f := NewFollow(clock, target, 0, -4, true)
	f.Attach(mover)

	run(clock, f, 1)
	if mover.x != 5 || mover.y != 1 {
		t.Fatalf("expected (5,1), got (%d,%d)", mover.x, mover.y)
	}
	target.removed = true
	run(clock, f, 1)
	if !f.IsFinished() {
		t.Fatalf("expected finished once the target is removed")
	}
}
