package main

import (
	"time"

	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/hero"
	"github.com/milk9111/hero/prefabs"
	"github.com/sirupsen/logrus"
)

// animator plays the hero animations defined in hero.yaml against the
// simulated clock. It draws nothing itself; the debug renderer reads its
// frame and flags.
type animator struct {
	clock common.Clock
	defs  map[string]prefabs.AnimationDefSpec
	log   *logrus.Entry

	name      string
	started   time.Duration
	direction int
	lifted    *hero.CarriedItem
	blinking  bool
	suspended common.Suspension
	warned    map[string]bool
}

func newAnimator(clock common.Clock, defs map[string]prefabs.AnimationDefSpec, log *logrus.Entry) *animator {
	return &animator{
		clock:     clock,
		defs:      defs,
		log:       log,
		direction: 3,
		warned:    make(map[string]bool),
	}
}

// SetDefs swaps the animation definitions after a reload.
func (a *animator) SetDefs(defs map[string]prefabs.AnimationDefSpec) { a.defs = defs }

func (a *animator) SetAnimation(name string) {
	if name == a.name {
		return
	}
	if _, ok := a.defs[name]; !ok && !a.warned[name] {
		a.warned[name] = true
		a.log.WithField("animation", name).Warn("unknown animation")
	}
	a.name = name
	a.started = a.now()
}

func (a *animator) Animation() string { return a.name }

func (a *animator) HasAnimation(name string) bool {
	_, ok := a.defs[name]
	return ok
}

// IsAnimationFinished is true for an unknown animation so states waiting on
// it do not hang.
func (a *animator) IsAnimationFinished() bool {
	def, ok := a.defs[a.name]
	if !ok {
		return true
	}
	if def.Loop {
		return false
	}
	return a.elapsed() >= length(def)
}

// Frame is the frame of the current animation to display.
func (a *animator) Frame() int {
	def, ok := a.defs[a.name]
	if !ok || def.FrameCount <= 0 || def.FPS <= 0 {
		return 0
	}
	frame := int(a.elapsed().Seconds() * def.FPS)
	if def.Loop {
		return frame % def.FrameCount
	}
	if frame >= def.FrameCount {
		return def.FrameCount - 1
	}
	return frame
}

func (a *animator) Direction() int { return a.direction }

func (a *animator) SetDirection(direction4 int) { a.direction = direction4 }

func (a *animator) SetLiftedItem(item *hero.CarriedItem) { a.lifted = item }

func (a *animator) LiftedItem() *hero.CarriedItem { return a.lifted }

func (a *animator) SetBlinking(blinking bool) { a.blinking = blinking }

// Visible is false on the off phase of blinking.
func (a *animator) Visible() bool {
	if !a.blinking {
		return true
	}
	return (a.now()/(50*time.Millisecond))%2 == 0
}

func (a *animator) SetSuspended(suspended bool) {
	if shift, changed := a.suspended.Set(suspended, a.clock.Now()); changed && !suspended {
		a.started += shift
	}
}

// now is frozen at the suspension date while suspended.
func (a *animator) now() time.Duration {
	if a.suspended.Suspended() {
		return a.suspended.Since()
	}
	return a.clock.Now()
}

func (a *animator) elapsed() time.Duration { return a.now() - a.started }

func length(def prefabs.AnimationDefSpec) time.Duration {
	if def.FPS <= 0 {
		return 0
	}
	return time.Duration(float64(def.FrameCount) / def.FPS * float64(time.Second))
}
