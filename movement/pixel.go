package movement

import (
	"time"

	"github.com/milk9111/hero/common"
)

// Step is one relative translation of a pixel trajectory.
type Step struct {
	DX, DY int
}

// Pixel applies an explicit list of translations, one every delay.
type Pixel struct {
	base

	trajectory []Step
	index      int
	stepsDone  int
	delay      time.Duration
	next       time.Duration
	loop       bool

	// onStep is called after each step with its index and whether it moved.
	onStep func(index int, moved bool)
}

// NewPixel creates a pixel movement.
func NewPixel(clock common.Clock, trajectory []Step, delay time.Duration, loop, ignoreObstacles bool) *Pixel {
	p := &Pixel{
		base:  newBase(clock, ignoreObstacles),
		delay: delay,
		loop:  loop,
	}
	p.SetTrajectory(trajectory)
	return p
}

func (p *Pixel) Attach(m Mover) {
	p.mover = m
	p.restart()
}

// SetTrajectory replaces the trajectory and restarts it.
func (p *Pixel) SetTrajectory(trajectory []Step) {
	p.trajectory = append(p.trajectory[:0], trajectory...)
	p.restart()
}

// Trajectory returns a copy of the steps.
func (p *Pixel) Trajectory() []Step {
	return append([]Step(nil), p.trajectory...)
}

func (p *Pixel) Delay() time.Duration { return p.delay }

func (p *Pixel) SetDelay(delay time.Duration) { p.delay = delay }

func (p *Pixel) SetLoop(loop bool) {
	p.loop = loop
	if p.finished && loop {
		p.restart()
	}
}

// StepsDone returns how many steps were made since the last restart.
func (p *Pixel) StepsDone() int { return p.stepsDone }

// Len returns the number of steps in the trajectory.
func (p *Pixel) Len() int { return len(p.trajectory) }

func (p *Pixel) restart() {
	if len(p.trajectory) == 0 {
		p.finished = true
		return
	}
	p.index = 0
	p.stepsDone = 0
	p.finished = false
	p.next = p.clock.Now() + p.delay
}

func (p *Pixel) Update() {
	if p.mover == nil || p.IsSuspended() {
		return
	}
	now := p.clock.Now()
	for !p.finished && now >= p.next {
		p.makeNextStep()
		if p.delay <= 0 {
			// A zero delay still makes at most one step per update.
			return
		}
	}
}

func (p *Pixel) makeNextStep() {
	s := p.trajectory[p.index]
	moved := p.translate(s.DX, s.DY)
	p.next += p.delay
	p.index++
	if p.index == len(p.trajectory) {
		if p.loop {
			p.index = 0
		} else {
			p.finished = true
		}
	}
	i := p.stepsDone
	p.stepsDone++
	if p.onStep != nil {
		p.onStep(i, moved)
	}
}

func (p *Pixel) Stop() {
	p.finished = true
}

func (p *Pixel) SetSuspended(suspended bool) {
	shift, changed := p.pause.Set(suspended, p.clock.Now())
	if changed && !suspended {
		p.next += shift
	}
}
