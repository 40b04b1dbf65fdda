package hero

import (
	"time"

	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/level"
)

// State is one exclusive behavior mode of the hero. Every state answers the
// whole predicate surface; BaseState provides the answers of the free
// state so a variant only overrides what differs.
type State interface {
	Name() string

	Start(previous State)
	Stop(next State)
	Update()
	IsSuspended() bool
	SetSuspended(suspended bool)

	// NotifyCommandPressed returns false when the hero should apply its
	// default handling.
	NotifyCommandPressed(c Command) bool
	NotifyCommandReleased(c Command) bool
	NotifyObstacleReached()
	NotifyAttackedEnemy(enemy *level.Enemy, reaction EnemyReaction)
	NotifyMapChanged()
	NotifyLayerChanged()
	NotifyPositionChanged()
	NotifyGroundBelowChanged()

	IsTouchingGround() bool
	CanAvoidDeepWater() bool
	CanAvoidHole() bool
	CanAvoidIce() bool
	CanAvoidLava() bool
	CanAvoidPrickle() bool
	CanAvoidTeletransporter() bool
	CanAvoidStream(s *level.Stream) bool
	CanAvoidSensor() bool
	CanAvoidSwitch() bool
	CanAvoidExplosion() bool

	IsGroundObstacle(g level.Ground) bool
	IsStairsObstacle(s *level.Stairs) bool
	IsJumperObstacle(j *level.Jumper, candidate common.Rect) bool
	IsSeparatorObstacle(s *level.Separator) bool
	IsSensorObstacle(s *level.Sensor) bool
	IsTeletransporterObstacle(t *level.Teletransporter) bool
	IsStreamObstacle(s *level.Stream) bool

	CanTakeStairs() bool
	CanTakeJumper() bool
	CanStartSword() bool
	CanStartItem(item Item) bool
	// CanBeHurt is asked with a nil attacker for damage from the ground.
	CanBeHurt(attacker level.Entity) bool
	CanPickTreasure(item string) bool
	IsHeroVisible() bool
	AreCollisionsIgnored() bool
	CanControlMovement() bool
	IsCuttingWithSword() bool
	IsGrabbingOrPulling() bool
	IsUsingItem() bool
	WantedMovementDirection8() int

	// CarriedItem is the item this state holds, if any.
	CarriedItem() *CarriedItem
	// PreviousCarriedItemBehavior tells the outgoing state what to do with
	// the item it holds when this state replaces it.
	PreviousCarriedItemBehavior() CarriedBehavior

	core() *BaseState
}

type phase int

const (
	phaseCreated phase = iota
	phaseStarted
	phaseStopping
	phaseStopped
	phaseDestroyed
)

// BaseState holds what every state shares and answers every predicate
// like the free state does.
type BaseState struct {
	hero      *Hero
	self      State
	name      string
	phase     phase
	pause     common.Suspension
	countdown []*common.Countdown
}

func newBaseState(h *Hero, name string) BaseState {
	return BaseState{hero: h, name: name}
}

func (b *BaseState) core() *BaseState { return b }

func (b *BaseState) Name() string { return b.name }

// Hero returns the hero owning the state.
func (b *BaseState) Hero() *Hero { return b.hero }

// IsCurrent reports whether the state is the hero's live state.
func (b *BaseState) IsCurrent() bool {
	return b.phase == phaseStarted && b.hero != nil && b.hero.state == b.self
}

// track registers countdowns that shift when the state is suspended.
func (b *BaseState) track(countdowns ...*common.Countdown) {
	b.countdown = append(b.countdown, countdowns...)
}

func (b *BaseState) now() time.Duration {
	return b.hero.ctx.Clock.Now()
}

func (b *BaseState) ctx() *Context {
	return &b.hero.ctx
}

func (b *BaseState) Start(State) {}

func (b *BaseState) Stop(State) {}

func (b *BaseState) Update() {}

func (b *BaseState) IsSuspended() bool { return b.pause.Suspended() }

// SetSuspended shifts every tracked countdown by the suspended duration.
func (b *BaseState) SetSuspended(suspended bool) {
	now := b.now()
	if _, changed := b.pause.Set(suspended, now); !changed {
		return
	}
	for _, c := range b.countdown {
		c.SetSuspended(suspended, now)
	}
}

func (b *BaseState) NotifyCommandPressed(c Command) bool {
	h := b.hero
	if b.self == nil || h.suspended {
		return false
	}
	switch c {
	case CommandAttack:
		if h.effects.Sword == SwordSwing && h.ctx.Equipment.HasAbility(AbilitySword) && b.self.CanStartSword() {
			h.StartSword()
			return true
		}
	case CommandItem1, CommandItem2:
		slot := 1
		if c == CommandItem2 {
			slot = 2
		}
		item := h.ctx.Equipment.ItemAssigned(slot)
		if item != nil && b.self.CanStartItem(item) {
			h.StartItem(item)
			return true
		}
	}
	return false
}

func (b *BaseState) NotifyCommandReleased(Command) bool { return false }

func (b *BaseState) NotifyObstacleReached() {}

func (b *BaseState) NotifyAttackedEnemy(*level.Enemy, EnemyReaction) {}

func (b *BaseState) NotifyMapChanged() {}

func (b *BaseState) NotifyLayerChanged() {}

func (b *BaseState) NotifyPositionChanged() {}

func (b *BaseState) NotifyGroundBelowChanged() {}

func (b *BaseState) IsTouchingGround() bool                    { return true }
func (b *BaseState) CanAvoidDeepWater() bool                   { return false }
func (b *BaseState) CanAvoidHole() bool                        { return false }
func (b *BaseState) CanAvoidIce() bool                         { return false }
func (b *BaseState) CanAvoidLava() bool                        { return false }
func (b *BaseState) CanAvoidPrickle() bool                     { return false }
func (b *BaseState) CanAvoidTeletransporter() bool             { return false }
func (b *BaseState) CanAvoidStream(*level.Stream) bool         { return false }
func (b *BaseState) CanAvoidSensor() bool                      { return false }
func (b *BaseState) CanAvoidSwitch() bool                      { return false }
func (b *BaseState) CanAvoidExplosion() bool                   { return false }
func (b *BaseState) IsStairsObstacle(*level.Stairs) bool       { return false }
func (b *BaseState) IsSeparatorObstacle(*level.Separator) bool { return false }
func (b *BaseState) IsSensorObstacle(*level.Sensor) bool       { return false }
func (b *BaseState) IsStreamObstacle(*level.Stream) bool       { return false }
func (b *BaseState) CanTakeStairs() bool                       { return true }
func (b *BaseState) CanTakeJumper() bool                       { return true }
func (b *BaseState) CanStartSword() bool                       { return true }
func (b *BaseState) CanBeHurt(level.Entity) bool               { return true }
func (b *BaseState) CanPickTreasure(string) bool               { return true }
func (b *BaseState) IsHeroVisible() bool                       { return true }
func (b *BaseState) AreCollisionsIgnored() bool                { return false }
func (b *BaseState) CanControlMovement() bool                  { return true }
func (b *BaseState) IsCuttingWithSword() bool                  { return false }
func (b *BaseState) IsGrabbingOrPulling() bool                 { return false }
func (b *BaseState) IsUsingItem() bool                         { return false }
func (b *BaseState) CarriedItem() *CarriedItem                 { return nil }

func (b *BaseState) IsTeletransporterObstacle(*level.Teletransporter) bool { return false }

func (b *BaseState) PreviousCarriedItemBehavior() CarriedBehavior { return CarriedThrow }

func (b *BaseState) IsGroundObstacle(g level.Ground) bool {
	return g == level.GroundWall || g == level.GroundLowWall
}

func (b *BaseState) CanStartItem(item Item) bool {
	return item != nil && item.IsAssignable()
}

func (b *BaseState) WantedMovementDirection8() int {
	return b.hero.commands.WantedDirection8()
}

// IsJumperObstacle lets the hero step onto a jumper only while moving in
// the jump direction, and never onto it when the state cannot take jumpers.
func (b *BaseState) IsJumperObstacle(j *level.Jumper, candidate common.Rect) bool {
	h := b.hero
	if j.Bounds().Overlaps(h.box) {
		// already inside, for example when arriving from the side
		return false
	}
	if !j.Bounds().Overlaps(candidate) {
		return false
	}
	if b.self == nil || !b.self.CanTakeJumper() {
		return true
	}
	return !h.isMovingTowards8(j.Direction8)
}
