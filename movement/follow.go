package movement

import "github.com/milk9111/hero/common"

// Follow keeps the mover at a fixed offset from another entity. It finishes
// when the followed entity is removed or when an obstacle is reached.
type Follow struct {
	base

	followed         Positioned
	offsetX, offsetY int
}

func NewFollow(clock common.Clock, followed Positioned, offsetX, offsetY int, ignoreObstacles bool) *Follow {
	return &Follow{
		base:     newBase(clock, ignoreObstacles),
		followed: followed,
		offsetX:  offsetX,
		offsetY:  offsetY,
	}
}

func (f *Follow) Attach(m Mover) {
	f.mover = m
}

func (f *Follow) Update() {
	if f.mover == nil || f.IsSuspended() {
		return
	}
	if f.followed == nil {
		f.finished = true
		return
	}
	if r, ok := f.followed.(Removable); ok && r.IsRemoved() {
		f.followed = nil
		f.finished = true
		return
	}
	if f.finished {
		return
	}
	fx, fy := f.followed.Position()
	x, y := f.mover.Position()
	dx, dy := fx+f.offsetX-x, fy+f.offsetY-y
	if dx == 0 && dy == 0 {
		return
	}
	if f.testObstacles(dx, dy) {
		f.finished = true
		f.mover.NotifyObstacleReached()
		return
	}
	f.mover.SetPosition(x+dx, y+dy)
}

func (f *Follow) Stop() {
	f.finished = true
}

func (f *Follow) SetSuspended(suspended bool) {
	f.pause.Set(suspended, f.clock.Now())
}
