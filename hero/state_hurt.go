package hero

import (
	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/level"
	"github.com/milk9111/hero/movement"
)

const (
	fallDamage        = 2
	waterPlungeDamage = 1
	lavaPlungeDamage  = 2
)

// HurtState knocks the hero back from what hit it. Whatever it carried
// breaks.
type HurtState struct {
	BaseState

	attacker level.Entity
	end      common.Countdown
}

func NewHurtState(h *Hero, attacker level.Entity) *HurtState {
	s := &HurtState{BaseState: newBaseState(h, "hurt"), attacker: attacker}
	s.track(&s.end)
	return s
}

func (s *HurtState) Start(State) {
	h := s.hero
	h.ClearMovement()
	h.ctx.Sprites.SetAnimation("hurt")
	s.end.Start(s.now(), h.ctx.Tuning.HurtDuration)
	if s.attacker == nil {
		return
	}
	ax, ay := s.attacker.Bounds().Center()
	hx, hy := h.box.Center()
	if ax == hx && ay == hy {
		return
	}
	knock := movement.NewStraight(h.ctx.Clock, h.ctx.Tuning.HurtSpeed, common.AngleTo(ax, ay, hx, hy), false)
	knock.SetMaxDistance(h.ctx.Tuning.HurtDistance)
	knock.SetFinishOnObstacle(true)
	h.SetMovement(knock)
}

func (s *HurtState) Stop(State) {
	s.hero.ClearMovement()
}

func (s *HurtState) Update() {
	if s.end.Expired(s.now()) {
		s.hero.StartStateFromGround()
	}
}

// Attacker returns what hurt the hero, nil for the ground.
func (s *HurtState) Attacker() level.Entity { return s.attacker }

func (s *HurtState) PreviousCarriedItemBehavior() CarriedBehavior { return CarriedDestroy }

func (s *HurtState) CanBeHurt(level.Entity) bool   { return false }
func (s *HurtState) CanPickTreasure(string) bool   { return false }
func (s *HurtState) CanStartSword() bool           { return false }
func (s *HurtState) CanStartItem(Item) bool        { return false }
func (s *HurtState) CanControlMovement() bool      { return false }
func (s *HurtState) CanTakeStairs() bool           { return false }
func (s *HurtState) CanTakeJumper() bool           { return false }
func (s *HurtState) WantedMovementDirection8() int { return common.NoDirection }

// FallingState drops the hero into a hole, then brings it back to solid
// ground with a penalty.
type FallingState struct {
	BaseState
}

func NewFallingState(h *Hero) *FallingState {
	return &FallingState{BaseState: newBaseState(h, "falling")}
}

func (s *FallingState) Start(State) {
	h := s.hero
	h.ClearMovement()
	h.ctx.Sprites.SetAnimation("falling")
	h.ctx.Sounds.Play("hero_falls")
}

func (s *FallingState) Update() {
	h := s.hero
	if !h.ctx.Sprites.IsAnimationFinished() {
		return
	}
	h.ctx.Sounds.Play("hero_hurt")
	h.ctx.Equipment.RemoveLife(fallDamage)
	h.StartBackToSolidGround(true, 0, true)
}

func (s *FallingState) PreviousCarriedItemBehavior() CarriedBehavior { return CarriedDestroy }

func (s *FallingState) CanAvoidHole() bool            { return true }
func (s *FallingState) CanBeHurt(level.Entity) bool   { return false }
func (s *FallingState) CanPickTreasure(string) bool   { return false }
func (s *FallingState) CanStartSword() bool           { return false }
func (s *FallingState) CanStartItem(Item) bool        { return false }
func (s *FallingState) CanControlMovement() bool      { return false }
func (s *FallingState) CanTakeStairs() bool           { return false }
func (s *FallingState) CanTakeJumper() bool           { return false }
func (s *FallingState) WantedMovementDirection8() int { return common.NoDirection }

// PlungingState sinks the hero into deep water or lava. It comes back to
// solid ground unless it can swim in the water.
type PlungingState struct {
	BaseState
	lava bool
}

func NewPlungingState(h *Hero) *PlungingState {
	return &PlungingState{BaseState: newBaseState(h, "plunging"), lava: h.ground == level.GroundLava}
}

// InLava reports whether the hero plunges into lava rather than water.
func (s *PlungingState) InLava() bool { return s.lava }

func (s *PlungingState) Start(State) {
	h := s.hero
	h.ClearMovement()
	if s.lava {
		h.ctx.Sprites.SetAnimation("plunging_lava")
		h.ctx.Sounds.Play("hero_falls")
		return
	}
	h.ctx.Sprites.SetAnimation("plunging_water")
	h.ctx.Sounds.Play("splash")
}

func (s *PlungingState) Update() {
	h := s.hero
	if !h.ctx.Sprites.IsAnimationFinished() {
		return
	}
	if !s.lava && h.ground == level.GroundDeepWater && h.ctx.Equipment.HasAbility(AbilitySwim) {
		h.SetState(NewSwimmingState(h))
		return
	}
	damage := waterPlungeDamage
	if s.lava {
		damage = lavaPlungeDamage
	}
	h.ctx.Sounds.Play("hero_hurt")
	h.ctx.Equipment.RemoveLife(damage)
	h.StartBackToSolidGround(true, 0, true)
}

func (s *PlungingState) PreviousCarriedItemBehavior() CarriedBehavior { return CarriedDestroy }

func (s *PlungingState) CanAvoidDeepWater() bool       { return true }
func (s *PlungingState) CanAvoidLava() bool            { return true }
func (s *PlungingState) CanBeHurt(level.Entity) bool   { return false }
func (s *PlungingState) CanPickTreasure(string) bool   { return false }
func (s *PlungingState) CanStartSword() bool           { return false }
func (s *PlungingState) CanStartItem(Item) bool        { return false }
func (s *PlungingState) CanControlMovement() bool      { return false }
func (s *PlungingState) CanTakeStairs() bool           { return false }
func (s *PlungingState) CanTakeJumper() bool           { return false }
func (s *PlungingState) WantedMovementDirection8() int { return common.NoDirection }
