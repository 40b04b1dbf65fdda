package hero

import (
	"time"

	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/level"
	"github.com/milk9111/hero/movement"
)

const (
	directionUnset = -2
	fastStroke     = 500 * time.Millisecond
)

// playerMovement is shared by the states where the arrows move the hero.
type playerMovement struct {
	BaseState

	speed      float64
	walk       *movement.Straight
	direction8 int
	stopped    string
	walking    string
}

func newPlayerMovement(h *Hero, name string, speed float64, stopped, walking string) playerMovement {
	return playerMovement{
		BaseState:  newBaseState(h, name),
		speed:      speed,
		direction8: directionUnset,
		stopped:    stopped,
		walking:    walking,
	}
}

func (p *playerMovement) Start(State) {
	p.walk = movement.NewStraight(p.hero.ctx.Clock, 0, 0, false)
	p.hero.SetMovement(p.walk)
	p.direction8 = directionUnset
	p.refresh()
}

func (p *playerMovement) Stop(State) {
	p.hero.ClearMovement()
}

func (p *playerMovement) Update() {
	p.refresh()
}

// setSpeed changes the walking speed and applies it at once.
func (p *playerMovement) setSpeed(speed float64) {
	p.speed = speed
	p.direction8 = directionUnset
	p.refresh()
}

// refresh follows the arrows held by the player.
func (p *playerMovement) refresh() {
	h := p.hero
	d := h.commands.WantedDirection8()
	if d == p.direction8 || p.walk == nil {
		return
	}
	p.direction8 = d
	if d < 0 {
		p.walk.SetSpeed(0)
		h.ctx.Sprites.SetAnimation(p.stopped)
		return
	}
	p.walk.SetSpeed(p.speed)
	p.walk.SetAngle(common.Direction8Angle(d))
	h.SetDirection4(direction4For(d, h.direction4))
	h.ctx.Sprites.SetAnimation(p.walking)
}

// direction4For picks the sprite direction for a direction8, keeping the
// current one when it is part of a diagonal.
func direction4For(direction8, current int) int {
	if direction8%2 == 0 {
		return direction8 / 2
	}
	a, b := direction8/2, (direction8/2+1)%4
	if current == a || current == b {
		return current
	}
	return a
}

// FreeState is the normal state: the hero walks, and the action command
// lifts, grabs or runs depending on what is in front of it.
type FreeState struct {
	playerMovement

	push           common.Countdown
	pushDirection4 int
}

func NewFreeState(h *Hero) *FreeState {
	s := &FreeState{}
	s.init(h, "free", h.ctx.Tuning.WalkingSpeed)
	return s
}

func (s *FreeState) init(h *Hero, name string, speed float64) {
	s.playerMovement = newPlayerMovement(h, name, speed, "stopped", "walking")
	s.pushDirection4 = -1
	s.track(&s.push)
}

func (s *FreeState) Start(previous State) {
	s.playerMovement.Start(previous)
	s.updateActionEffect()
}

func (s *FreeState) Stop(next State) {
	s.playerMovement.Stop(next)
	s.hero.effects.Action = ActionNone
}

func (s *FreeState) Update() {
	s.playerMovement.Update()
	s.updateActionEffect()
	s.updatePushing()
}

func (s *FreeState) updateActionEffect() {
	h := s.hero
	eff := ActionNone
	if _, ok := h.FacingLiftable(); ok && h.ctx.Equipment.HasAbility(AbilityLift) {
		eff = ActionLift
	} else if h.FacingBlock() != nil && h.ctx.Equipment.HasAbility(AbilityGrab) {
		eff = ActionGrab
	}
	h.effects.Action = eff
}

func (s *FreeState) updatePushing() {
	if !s.push.Armed() {
		return
	}
	h := s.hero
	if s.direction8 != s.pushDirection4*2 {
		s.push.Stop()
		return
	}
	if !s.push.Expired(s.now()) {
		return
	}
	s.push.Stop()
	if b := h.FacingBlock(); b != nil && b.Pushable {
		h.SetState(NewPushingState(h, b, s.pushDirection4))
	}
}

// NotifyObstacleReached starts the push delay when walking into a block.
func (s *FreeState) NotifyObstacleReached() {
	h := s.hero
	d := s.direction8
	if d < 0 || d%2 != 0 || d/2 != h.direction4 || !h.ctx.Equipment.HasAbility(AbilityPush) {
		return
	}
	if b := h.FacingBlock(); b == nil || !b.Pushable {
		return
	}
	if !s.push.Armed() || s.pushDirection4 != h.direction4 {
		s.pushDirection4 = h.direction4
		s.push.Start(s.now(), h.ctx.Tuning.PushDelay)
	}
}

func (s *FreeState) NotifyCommandPressed(c Command) bool {
	h := s.hero
	if c != CommandAction || h.suspended {
		return s.BaseState.NotifyCommandPressed(c)
	}
	switch h.effects.Action {
	case ActionLift:
		if e, ok := h.FacingLiftable(); ok {
			h.StartLifting(e)
			return true
		}
	case ActionGrab:
		if b := h.FacingBlock(); b != nil {
			h.StartGrabbing(b)
			return true
		}
	}
	if h.ctx.Equipment.HasAbility(AbilityRun) {
		h.StartRunning()
		return true
	}
	return false
}

func (s *FreeState) NotifyGroundBelowChanged() {
	if s.hero.ground == level.GroundShallowWater {
		s.hero.SetState(NewWadingState(s.hero))
	}
}

// WadingState is the free state in shallow water, slower.
type WadingState struct {
	FreeState
}

func NewWadingState(h *Hero) *WadingState {
	s := &WadingState{}
	s.init(h, "wading", h.ctx.Tuning.WadingSpeed)
	return s
}

func (s *WadingState) Start(previous State) {
	s.FreeState.Start(previous)
	s.hero.ctx.Sounds.Play("walk_on_water")
}

func (s *WadingState) NotifyGroundBelowChanged() {
	if s.hero.ground != level.GroundShallowWater {
		s.hero.StartStateFromGround()
	}
}

// CarryingState walks with a lifted item above the head. The action
// command throws it.
type CarryingState struct {
	playerMovement
	ref carriedRef
}

func NewCarryingState(h *Hero, item *CarriedItem) *CarryingState {
	s := &CarryingState{
		playerMovement: newPlayerMovement(h, "carrying", h.ctx.Tuning.CarryingSpeed, "carrying_stopped", "carrying_walking"),
	}
	s.ref = acquireCarried(item)
	if s.ref.item != nil {
		s.track(&s.ref.item.lift)
	}
	return s
}

func (s *CarryingState) Start(previous State) {
	s.playerMovement.Start(previous)
	s.hero.effects.Action = ActionThrow
	s.hero.ctx.Sprites.SetLiftedItem(s.ref.item)
}

func (s *CarryingState) Stop(next State) {
	s.playerMovement.Stop(next)
	s.ref.settle(s.hero, next)
	s.hero.effects.Action = ActionNone
}

func (s *CarryingState) Update() {
	s.playerMovement.Update()
	item := s.ref.item
	if item == nil {
		return
	}
	item.update(s.hero)
	if item.IsBroken() {
		s.ref.item = nil
		s.hero.ctx.Sprites.SetLiftedItem(nil)
		ecs.Release(item.world, item.entity)
		item.destroy(s.hero)
		s.hero.StartFree()
	}
}

func (s *CarryingState) NotifyCommandPressed(c Command) bool {
	h := s.hero
	if c == CommandAction && !h.suspended && h.effects.Action == ActionThrow {
		// the free state throws what the previous state carried
		h.StartFree()
		return true
	}
	return s.BaseState.NotifyCommandPressed(c)
}

func (s *CarryingState) CarriedItem() *CarriedItem { return s.ref.item }

func (s *CarryingState) PreviousCarriedItemBehavior() CarriedBehavior { return CarriedKeep }

func (s *CarryingState) releaseCarried() { s.ref.drop() }

// SwimmingState moves in deep water. The action command gives a faster
// stroke.
type SwimmingState struct {
	playerMovement
	fast common.Countdown
}

func NewSwimmingState(h *Hero) *SwimmingState {
	s := &SwimmingState{
		playerMovement: newPlayerMovement(h, "swimming", h.ctx.Tuning.SwimmingSpeed, "swimming_stopped", "swimming_slow"),
	}
	s.track(&s.fast)
	return s
}

func (s *SwimmingState) Start(previous State) {
	h := s.hero
	s.playerMovement.Start(previous)
	h.ctx.Sounds.Play("splash")
	h.ctx.Equipment.NotifyAbilityUsed(AbilitySwim)
	h.effects.Action = ActionSwim
}

func (s *SwimmingState) Stop(next State) {
	s.playerMovement.Stop(next)
	s.hero.effects.Action = ActionNone
}

func (s *SwimmingState) Update() {
	if s.fast.Armed() && s.fast.Expired(s.now()) {
		s.fast.Stop()
		s.walking = "swimming_slow"
		s.setSpeed(s.hero.ctx.Tuning.SwimmingSpeed)
	}
	s.playerMovement.Update()
}

func (s *SwimmingState) NotifyCommandPressed(c Command) bool {
	h := s.hero
	if c == CommandAction && !h.suspended {
		if !s.fast.Armed() {
			s.walking = "swimming_fast"
			s.setSpeed(h.ctx.Tuning.SwimmingSpeed * 2)
		}
		s.fast.Start(s.now(), fastStroke)
		return true
	}
	return s.BaseState.NotifyCommandPressed(c)
}

func (s *SwimmingState) NotifyGroundBelowChanged() {
	if s.hero.ground != level.GroundDeepWater {
		s.hero.StartStateFromGround()
	}
}

func (s *SwimmingState) CanAvoidDeepWater() bool { return true }
func (s *SwimmingState) CanStartSword() bool     { return false }
func (s *SwimmingState) CanStartItem(Item) bool  { return false }
func (s *SwimmingState) CanTakeStairs() bool     { return false }
