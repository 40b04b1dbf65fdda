package hero

import (
	"github.com/milk9111/hero/common"
)

// LiftingState raises a liftable item above the head. Once the item is up
// the hero carries it.
type LiftingState struct {
	BaseState
	ref carriedRef
}

func NewLiftingState(h *Hero, item *CarriedItem) *LiftingState {
	if item == nil {
		invariant(ErrMissingCarriedItem, "lifting from %s", h.StateName())
	}
	s := &LiftingState{BaseState: newBaseState(h, "lifting")}
	s.ref = acquireCarried(item)
	s.track(&item.lift)
	return s
}

func (s *LiftingState) Start(State) {
	h := s.hero
	h.ClearMovement()
	// The Carried marker hides the item from FacingLiftable, so nothing is
	// faced until the item leaves the hands.
	h.effects.Action = ActionThrow
	h.effects.PauseAllowed = false
	h.ctx.Sprites.SetAnimation("lifting")
	h.ctx.Sprites.SetLiftedItem(s.ref.item)
	h.ctx.Sounds.Play("lift")
	h.ctx.Equipment.NotifyAbilityUsed(AbilityLift)
}

func (s *LiftingState) Stop(next State) {
	h := s.hero
	s.ref.settle(h, next)
	h.effects.PauseAllowed = true
	h.effects.Action = ActionNone
}

func (s *LiftingState) Update() {
	h := s.hero
	item := s.ref.item
	if item == nil {
		h.StartFree()
		return
	}
	item.update(h)
	if !item.IsBeingLifted() {
		h.SetState(NewCarryingState(h, item))
	}
}

// NotifyCommandPressed throws the item right away on the action command.
func (s *LiftingState) NotifyCommandPressed(c Command) bool {
	h := s.hero
	if c == CommandAction && !h.suspended && h.effects.Action == ActionThrow {
		h.StartFree()
		return true
	}
	return false
}

func (s *LiftingState) CarriedItem() *CarriedItem { return s.ref.item }

func (s *LiftingState) releaseCarried() { s.ref.drop() }

func (s *LiftingState) CanStartSword() bool           { return false }
func (s *LiftingState) CanStartItem(Item) bool        { return false }
func (s *LiftingState) CanControlMovement() bool      { return false }
func (s *LiftingState) CanTakeStairs() bool           { return false }
func (s *LiftingState) CanTakeJumper() bool           { return false }
func (s *LiftingState) CanPickTreasure(string) bool   { return false }
func (s *LiftingState) WantedMovementDirection8() int { return common.NoDirection }
