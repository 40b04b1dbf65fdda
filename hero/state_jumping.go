package hero

import (
	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/level"
	"github.com/milk9111/hero/movement"
)

// JumpingState makes the hero jump over a distance, keeping what it carries.
// It lands in the state matching the ground below.
type JumpingState struct {
	BaseState

	direction8      int
	distance        int
	ignoreObstacles bool
	withSound       bool
	jump            *movement.Jump
	ref             carriedRef
}

func NewJumpingState(h *Hero, direction8, distance int, ignoreObstacles, withSound bool) *JumpingState {
	s := &JumpingState{
		BaseState:       newBaseState(h, "jumping"),
		direction8:      direction8,
		distance:        distance,
		ignoreObstacles: ignoreObstacles,
		withSound:       withSound,
	}
	s.ref = acquireCarried(h.carriedItem())
	if s.ref.item != nil {
		s.track(&s.ref.item.lift)
	}
	return s
}

// Jump returns the movement of the jump.
func (s *JumpingState) Jump() *movement.Jump { return s.jump }

func (s *JumpingState) Start(State) {
	h := s.hero
	h.SetDirection4(direction4For(s.direction8, h.direction4))
	if s.ref.item == nil {
		h.ctx.Sprites.SetAnimation("jumping")
	} else {
		h.ctx.Sprites.SetAnimation("carrying_walking")
		h.ctx.Sprites.SetLiftedItem(s.ref.item)
	}
	s.jump = movement.NewJump(h.ctx.Clock, s.direction8, s.distance, h.ctx.Tuning.JumpDelay, s.ignoreObstacles)
	h.SetMovement(s.jump)
	if s.withSound {
		h.ctx.Sounds.Play("jump")
	}
}

func (s *JumpingState) Stop(next State) {
	s.hero.ClearMovement()
	s.ref.settle(s.hero, next)
}

func (s *JumpingState) Update() {
	h := s.hero
	if s.ref.item != nil {
		s.ref.item.update(h)
	}
	if s.jump.IsFinished() {
		h.StartStateFromGround()
	}
}

func (s *JumpingState) NotifyLayerChanged() {
	if s.ref.item != nil {
		s.ref.item.update(s.hero)
	}
}

func (s *JumpingState) WantedMovementDirection8() int { return s.direction8 }

func (s *JumpingState) CarriedItem() *CarriedItem { return s.ref.item }

func (s *JumpingState) PreviousCarriedItemBehavior() CarriedBehavior { return CarriedKeep }

func (s *JumpingState) releaseCarried() { s.ref.drop() }

func (s *JumpingState) IsTouchingGround() bool                    { return false }
func (s *JumpingState) CanAvoidDeepWater() bool                   { return true }
func (s *JumpingState) CanAvoidHole() bool                        { return true }
func (s *JumpingState) CanAvoidIce() bool                         { return true }
func (s *JumpingState) CanAvoidLava() bool                        { return true }
func (s *JumpingState) CanAvoidPrickle() bool                     { return true }
func (s *JumpingState) CanAvoidTeletransporter() bool             { return true }
func (s *JumpingState) CanAvoidStream(*level.Stream) bool         { return true }
func (s *JumpingState) CanAvoidSwitch() bool                      { return true }
func (s *JumpingState) CanBeHurt(level.Entity) bool               { return false }
func (s *JumpingState) CanStartSword() bool                       { return false }
func (s *JumpingState) CanStartItem(Item) bool                    { return false }
func (s *JumpingState) CanControlMovement() bool                  { return false }
func (s *JumpingState) CanTakeStairs() bool                       { return false }
func (s *JumpingState) CanTakeJumper() bool                       { return false }
func (s *JumpingState) IsSensorObstacle(*level.Sensor) bool       { return false }
func (s *JumpingState) IsSeparatorObstacle(*level.Separator) bool { return true }

// IsStairsObstacle lets the hero jump over stairs covered by water.
func (s *JumpingState) IsStairsObstacle(*level.Stairs) bool {
	return s.hero.ground != level.GroundDeepWater
}

func (s *JumpingState) IsJumperObstacle(*level.Jumper, common.Rect) bool { return false }
