package hero

import (
	"github.com/looplab/fsm"
	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/ecs/component"
	"github.com/milk9111/hero/level"
	"github.com/milk9111/hero/movement"
	"github.com/sirupsen/logrus"
)

const (
	hookshotFlying    = "flying"
	hookshotAttached  = "attached"
	hookshotGoingBack = "going_back"
	hookshotDone      = "done"

	hookshotTipSize = 8
)

// Hookshot is the chain tip thrown by the hero. It flies until it hooks an
// entity, hits something or reaches its length, then either pulls the hero
// or comes back to the hero.
type Hookshot struct {
	hero   *Hero
	entity ecs.Entity
	fsm    *fsm.FSM
	log    *logrus.Entry

	x, y   int
	layer  level.Layer
	move   movement.Movement
	hooked level.Entity
}

func newHookshot(h *Hero) *Hookshot {
	w := h.ctx.World
	if h.hasProjectile(component.ProjectileHookshot) {
		invariant(ErrHookshotStarted, "a tip is still on the map")
	}

	hs := &Hookshot{hero: h, layer: h.layer, log: h.log.WithField("entity", "hookshot")}
	cx, cy := h.box.Center()
	dx, dy := common.Direction4Step(h.direction4)
	hs.x = cx - hookshotTipSize/2 + dx*h.box.Width/2
	hs.y = cy - hookshotTipSize/2 + dy*h.box.Height/2

	hs.entity = ecs.CreateEntity(w)
	_ = ecs.Add(w, hs.entity, component.TransformComponent.Kind(), &component.Transform{
		X: float64(hs.x), Y: float64(hs.y), Width: hookshotTipSize, Height: hookshotTipSize, Layer: int(hs.layer),
	})
	_ = ecs.Add(w, hs.entity, component.ProjectileComponent.Kind(), &component.Projectile{
		Kind:        component.ProjectileHookshot,
		MaxDistance: float64(h.ctx.Tuning.HookshotLength),
		Owner:       uint64(h.entity),
	})

	hs.fsm = fsm.NewFSM(
		hookshotFlying,
		[]fsm.EventDesc{
			{Name: "attach", Src: []string{hookshotFlying}, Dst: hookshotAttached},
			{Name: "go_back", Src: []string{hookshotFlying}, Dst: hookshotGoingBack},
			{Name: "finish", Src: []string{hookshotFlying, hookshotAttached, hookshotGoingBack}, Dst: hookshotDone},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) {
				hs.log.WithFields(logrus.Fields{"from": e.Src, "to": e.Dst}).Debug("hookshot phase")
			},
			"enter_" + hookshotAttached: func(*fsm.Event) {
				hs.stopTip()
				hs.hero.ctx.Sounds.Play("hookshot_hooked")
			},
			"enter_" + hookshotGoingBack: func(*fsm.Event) {
				hs.stopTip()
				hs.setTipMovement(movement.NewTargetEntity(h.ctx.Clock, heroTipAnchor{h}, 0, 0, h.ctx.Tuning.HookshotSpeed, true))
			},
			"enter_" + hookshotDone: func(*fsm.Event) {
				hs.stopTip()
			},
		},
	)

	angle := common.Direction8Angle(h.direction4 * 2)
	flight := movement.NewStraight(h.ctx.Clock, h.ctx.Tuning.HookshotSpeed, angle, false)
	flight.SetMaxDistance(h.ctx.Tuning.HookshotLength)
	flight.SetFinishOnObstacle(true)
	hs.setTipMovement(flight)
	return hs
}

// heroTipAnchor is where the tip goes back to: the center of the hero.
type heroTipAnchor struct{ h *Hero }

func (a heroTipAnchor) Position() (int, int) {
	cx, cy := a.h.box.Center()
	return cx - hookshotTipSize/2, cy - hookshotTipSize/2
}

func (hs *Hookshot) Entity() ecs.Entity { return hs.entity }

// Phase is one of flying, attached, going_back or done.
func (hs *Hookshot) Phase() string { return hs.fsm.Current() }

func (hs *Hookshot) IsFlying() bool { return hs.fsm.Is(hookshotFlying) }

func (hs *Hookshot) IsAttached() bool { return hs.fsm.Is(hookshotAttached) }

func (hs *Hookshot) IsGoingBack() bool { return hs.fsm.Is(hookshotGoingBack) }

func (hs *Hookshot) IsDone() bool { return hs.fsm.Is(hookshotDone) }

// Hooked returns the entity the tip is attached to, if any.
func (hs *Hookshot) Hooked() level.Entity { return hs.hooked }

func (hs *Hookshot) event(name string) {
	if !hs.fsm.Can(name) {
		return
	}
	if err := hs.fsm.Event(name); err != nil {
		hs.log.WithError(err).Debug("hookshot event ignored")
	}
}

func (hs *Hookshot) setTipMovement(m movement.Movement) {
	hs.move = m
	m.Attach(hs)
	if hs.hero.suspended {
		m.SetSuspended(true)
	}
}

func (hs *Hookshot) stopTip() {
	if hs.move == nil {
		return
	}
	m := hs.move
	hs.move = nil
	m.Stop()
	m.Attach(nil)
}

// update moves the tip and resolves the end of its flight.
func (hs *Hookshot) update() {
	if hs.move != nil {
		hs.move.Update()
	}
	switch {
	case hs.IsFlying() && hs.move != nil && hs.move.IsFinished():
		hs.event("go_back")
	case hs.IsGoingBack() && hs.move != nil && hs.move.IsFinished():
		hs.event("finish")
	}
}

func (hs *Hookshot) setSuspended(suspended bool) {
	if hs.move != nil {
		hs.move.SetSuspended(suspended)
	}
}

// remove takes the tip off the map.
func (hs *Hookshot) remove() {
	hs.event("finish")
	hs.stopTip()
	ecs.DestroyEntity(hs.hero.ctx.World, hs.entity)
}

func (hs *Hookshot) box() common.Rect {
	return common.NewRect(hs.x, hs.y, hookshotTipSize, hookshotTipSize)
}

func (hs *Hookshot) Position() (int, int) { return hs.x, hs.y }

func (hs *Hookshot) SetPosition(x, y int) {
	w := hs.hero.ctx.World
	if p, ok := ecs.Get(w, hs.entity, component.ProjectileComponent.Kind()); ok {
		p.Traveled += common.Distance(hs.x, hs.y, x, y)
	}
	hs.x, hs.y = x, y
	if t, ok := ecs.Get(w, hs.entity, component.TransformComponent.Kind()); ok {
		t.X, t.Y = float64(x), float64(y)
	}
	if hs.IsFlying() {
		hs.hitEnemy()
	}
}

// TestObstacles stops the tip on walls and remembers a hookable entity on
// the way.
func (hs *Hookshot) TestObstacles(dx, dy int) bool {
	candidate := hs.box().Translate(dx, dy)
	m := hs.hero.ctx.Map
	for _, e := range m.EntitiesOverlapping(hs.layer, candidate) {
		if _, ok := e.(*level.Hookable); ok {
			hs.hooked = e
			return true
		}
	}
	return m.CollidesWithObstacles(hs.layer, candidate, level.Solid{IgnoreLowWalls: true})
}

func (hs *Hookshot) NotifyObstacleReached() {
	if !hs.IsFlying() {
		return
	}
	if hs.hooked != nil {
		hs.event("attach")
		return
	}
	hs.hero.ctx.Sounds.Play("sword_tapping")
	hs.event("go_back")
}

func (hs *Hookshot) hitEnemy() {
	h := hs.hero
	for _, e := range h.ctx.Map.EntitiesOverlapping(hs.layer, hs.box()) {
		if enemy, ok := e.(*level.Enemy); ok && enemy.IsAlive() {
			h.NotifyAttackedEnemy(enemy, ReactionImmobilized)
			hs.event("go_back")
			return
		}
	}
}

// HookshotState throws the hookshot and waits for it. When the tip hooks
// something the hero is pulled there, flying over every hazard.
type HookshotState struct {
	BaseState

	hookshot  *Hookshot
	nextSound common.Countdown
	pulling   bool
}

func NewHookshotState(h *Hero) *HookshotState {
	s := &HookshotState{BaseState: newBaseState(h, "hookshot")}
	s.track(&s.nextSound)
	return s
}

// Hookshot returns the thrown tip.
func (s *HookshotState) Hookshot() *Hookshot { return s.hookshot }

func (s *HookshotState) Start(State) {
	h := s.hero
	if s.hookshot != nil {
		invariant(ErrHookshotStarted, "state started twice")
	}
	h.ClearMovement()
	h.ctx.Sprites.SetAnimation("hookshot")
	s.hookshot = newHookshot(h)
	s.nextSound.Start(s.now(), 0)
}

func (s *HookshotState) Stop(State) {
	s.hero.ClearMovement()
	if s.hookshot != nil {
		s.hookshot.remove()
	}
}

func (s *HookshotState) SetSuspended(suspended bool) {
	s.BaseState.SetSuspended(suspended)
	if s.hookshot != nil {
		s.hookshot.setSuspended(suspended)
	}
}

func (s *HookshotState) Update() {
	h := s.hero
	hs := s.hookshot
	now := s.now()
	if !hs.IsDone() && s.nextSound.Expired(now) {
		h.ctx.Sounds.Play("hookshot")
		s.nextSound.Extend(h.ctx.Tuning.HookshotSoundPeriod)
	}

	hs.update()
	switch {
	case hs.IsAttached() && !s.pulling:
		s.pulling = true
		cx, cy := hs.box().Center()
		target := movement.NewTarget(h.ctx.Clock, cx-h.box.Width/2, cy-h.box.Height/2, h.ctx.Tuning.HookshotPullSpeed, false)
		h.SetMovement(target)
	case s.pulling && h.movement != nil && h.movement.IsFinished():
		s.finishMovement()
	case hs.IsDone():
		s.finishMovement()
	}
}

// NotifyObstacleReached ends the pull where the hero is stopped.
func (s *HookshotState) NotifyObstacleReached() {
	if s.pulling {
		s.finishMovement()
	}
}

// finishMovement lands the hero, who may have been pulled over empty ground
// of an upper layer. The hero then falls to the layer below if it is free there,
// or goes back to solid ground.
func (s *HookshotState) finishMovement() {
	h := s.hero
	box := h.box
	layer := h.layer
	if layer == level.LayerLow || !h.ctx.Map.HasEmptyGround(layer, box) {
		h.StartStateFromGround()
		return
	}
	below := layer - 1
	if !h.ctx.Map.CollidesWithObstacles(below, box, h) {
		h.ctx.Sounds.Play("hero_lands")
		h.SetLayer(below)
		if s.IsCurrent() {
			h.StartStateFromGround()
		}
		return
	}
	h.ctx.Sounds.Play("hero_hurt")
	h.StartBackToSolidGround(false, 0, true)
}

func (s *HookshotState) IsTouchingGround() bool            { return false }
func (s *HookshotState) CanAvoidDeepWater() bool           { return true }
func (s *HookshotState) CanAvoidHole() bool                { return true }
func (s *HookshotState) CanAvoidIce() bool                 { return true }
func (s *HookshotState) CanAvoidLava() bool                { return true }
func (s *HookshotState) CanAvoidPrickle() bool             { return true }
func (s *HookshotState) CanAvoidTeletransporter() bool     { return true }
func (s *HookshotState) CanAvoidStream(*level.Stream) bool { return true }
func (s *HookshotState) CanAvoidSwitch() bool              { return true }
func (s *HookshotState) CanBeHurt(level.Entity) bool       { return false }
func (s *HookshotState) CanPickTreasure(string) bool       { return true }
func (s *HookshotState) CanStartSword() bool               { return false }
func (s *HookshotState) CanStartItem(Item) bool            { return false }
func (s *HookshotState) CanControlMovement() bool          { return false }
func (s *HookshotState) CanTakeStairs() bool               { return false }
func (s *HookshotState) CanTakeJumper() bool               { return false }

func (s *HookshotState) IsSensorObstacle(*level.Sensor) bool { return false }

// IsStairsObstacle lets the hero be pulled over stairs covered by water.
func (s *HookshotState) IsStairsObstacle(*level.Stairs) bool {
	return s.hero.ground != level.GroundDeepWater
}

func (s *HookshotState) IsJumperObstacle(*level.Jumper, common.Rect) bool { return false }
