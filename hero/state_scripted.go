package hero

import (
	"fmt"

	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/level"
	"github.com/milk9111/hero/movement"
	"github.com/sirupsen/logrus"
)

// UsingItemState runs an equipment item until the item finishes its usage.
type UsingItemState struct {
	BaseState
	usage *ItemUsage
}

func NewUsingItemState(h *Hero, item Item) *UsingItemState {
	return &UsingItemState{
		BaseState: newBaseState(h, "using item"),
		usage:     &ItemUsage{hero: h, item: item},
	}
}

// Usage returns the running item usage.
func (s *UsingItemState) Usage() *ItemUsage { return s.usage }

func (s *UsingItemState) Start(State) {
	h := s.hero
	h.ClearMovement()
	h.log.WithField("item", s.usage.item.Name()).Debug("using item")
	s.usage.item.OnUsing(s.usage)
}

func (s *UsingItemState) Stop(State) {
	s.hero.ClearMovement()
}

func (s *UsingItemState) Update() {
	if u, ok := s.usage.item.(itemUpdater); ok && !s.usage.finished {
		u.OnUsingUpdate(s.usage)
		if !s.IsCurrent() {
			return
		}
	}
	if s.usage.finished {
		s.hero.StartFree()
	}
}

func (s *UsingItemState) IsUsingItem() bool                 { return true }
func (s *UsingItemState) CanAvoidStream(*level.Stream) bool { return true }
func (s *UsingItemState) CanStartSword() bool               { return false }
func (s *UsingItemState) CanStartItem(Item) bool            { return false }
func (s *UsingItemState) CanControlMovement() bool          { return false }
func (s *UsingItemState) CanTakeStairs() bool               { return false }
func (s *UsingItemState) CanTakeJumper() bool               { return false }
func (s *UsingItemState) CanPickTreasure(string) bool       { return false }
func (s *UsingItemState) WantedMovementDirection8() int     { return common.NoDirection }

// ForcedWalkingState walks the hero along a path of direction8 digits,
// ignoring the player.
type ForcedWalkingState struct {
	BaseState
	path *movement.Path
}

func NewForcedWalkingState(h *Hero, path string, loop, ignoreObstacles bool) (*ForcedWalkingState, error) {
	p, err := movement.NewPath(h.ctx.Clock, path, h.ctx.Tuning.ForcedWalkSpeed, loop, ignoreObstacles)
	if err != nil {
		return nil, fmt.Errorf("hero: forced walking: %w", err)
	}
	return &ForcedWalkingState{BaseState: newBaseState(h, "forced walking"), path: p}, nil
}

// Path returns the walked path.
func (s *ForcedWalkingState) Path() *movement.Path { return s.path }

func (s *ForcedWalkingState) Start(State) {
	h := s.hero
	h.ctx.Sprites.SetAnimation("walking")
	h.SetMovement(s.path)
	s.face()
}

func (s *ForcedWalkingState) Stop(State) {
	s.hero.ClearMovement()
}

func (s *ForcedWalkingState) face() {
	if d := s.path.CurrentDirection(); d >= 0 {
		s.hero.SetDirection4(direction4For(d, s.hero.direction4))
	}
}

func (s *ForcedWalkingState) Update() {
	s.face()
	if s.path.IsFinished() {
		s.hero.StartStateFromGround()
	}
}

func (s *ForcedWalkingState) IsTouchingGround() bool            { return false }
func (s *ForcedWalkingState) CanAvoidDeepWater() bool           { return true }
func (s *ForcedWalkingState) CanAvoidHole() bool                { return true }
func (s *ForcedWalkingState) CanAvoidIce() bool                 { return true }
func (s *ForcedWalkingState) CanAvoidLava() bool                { return true }
func (s *ForcedWalkingState) CanAvoidPrickle() bool             { return true }
func (s *ForcedWalkingState) CanAvoidTeletransporter() bool     { return true }
func (s *ForcedWalkingState) CanAvoidStream(*level.Stream) bool { return true }
func (s *ForcedWalkingState) CanAvoidSensor() bool              { return true }
func (s *ForcedWalkingState) CanAvoidSwitch() bool              { return true }
func (s *ForcedWalkingState) CanAvoidExplosion() bool           { return true }
func (s *ForcedWalkingState) CanBeHurt(level.Entity) bool       { return false }
func (s *ForcedWalkingState) CanPickTreasure(string) bool       { return false }
func (s *ForcedWalkingState) CanStartSword() bool               { return false }
func (s *ForcedWalkingState) CanStartItem(Item) bool            { return false }
func (s *ForcedWalkingState) CanControlMovement() bool          { return false }
func (s *ForcedWalkingState) CanTakeStairs() bool               { return false }
func (s *ForcedWalkingState) CanTakeJumper() bool               { return false }
func (s *ForcedWalkingState) WantedMovementDirection8() int     { return s.path.CurrentDirection() }

// FreezedState keeps the hero still, for cutscenes and dialogs.
type FreezedState struct {
	BaseState
}

func NewFreezedState(h *Hero) *FreezedState {
	return &FreezedState{BaseState: newBaseState(h, "frozen")}
}

func (s *FreezedState) Start(State) {
	h := s.hero
	h.ClearMovement()
	h.ctx.Sprites.SetAnimation("stopped")
	h.effects.Action = ActionNone
}

func (s *FreezedState) CanBeHurt(level.Entity) bool   { return false }
func (s *FreezedState) CanPickTreasure(string) bool   { return false }
func (s *FreezedState) CanStartSword() bool           { return false }
func (s *FreezedState) CanStartItem(Item) bool        { return false }
func (s *FreezedState) CanControlMovement() bool      { return false }
func (s *FreezedState) CanTakeStairs() bool           { return false }
func (s *FreezedState) CanTakeJumper() bool           { return false }
func (s *FreezedState) WantedMovementDirection8() int { return common.NoDirection }

// TreasureState shows a treasure above the hero's head for a while. The
// item is already in the inventory when the state starts.
type TreasureState struct {
	BaseState

	item    string
	variant int
	end     common.Countdown
}

func NewTreasureState(h *Hero, item string, variant int) *TreasureState {
	s := &TreasureState{BaseState: newBaseState(h, "treasure"), item: item, variant: variant}
	s.track(&s.end)
	return s
}

// Treasure returns the item name and variant being shown.
func (s *TreasureState) Treasure() (string, int) { return s.item, s.variant }

func (s *TreasureState) Start(State) {
	h := s.hero
	h.ClearMovement()
	h.ctx.Equipment.AddItem(s.item, s.variant)
	h.ctx.Sounds.Play("treasure")
	h.effects.PauseAllowed = false

	animation := "treasure_" + s.item
	if !h.ctx.Sprites.HasAnimation(animation) {
		h.log.WithFields(logrus.Fields{"item": s.item, "animation": animation}).Warn("missing treasure animation")
		animation = "treasure"
	}
	h.ctx.Sprites.SetAnimation(animation)
	s.end.Start(s.now(), h.ctx.Tuning.TreasureDuration)
	h.log.WithFields(logrus.Fields{"item": s.item, "variant": s.variant}).Info("treasure obtained")
}

func (s *TreasureState) Stop(State) {
	s.hero.effects.PauseAllowed = true
}

func (s *TreasureState) Update() {
	if s.end.Expired(s.now()) {
		s.hero.StartFree()
	}
}

func (s *TreasureState) PreviousCarriedItemBehavior() CarriedBehavior { return CarriedDestroy }

func (s *TreasureState) CanBeHurt(level.Entity) bool   { return false }
func (s *TreasureState) CanPickTreasure(string) bool   { return false }
func (s *TreasureState) CanStartSword() bool           { return false }
func (s *TreasureState) CanStartItem(Item) bool        { return false }
func (s *TreasureState) CanControlMovement() bool      { return false }
func (s *TreasureState) CanTakeStairs() bool           { return false }
func (s *TreasureState) CanTakeJumper() bool           { return false }
func (s *TreasureState) WantedMovementDirection8() int { return common.NoDirection }
