package hero

import (
	"strconv"
	"strings"
	"time"

	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/level"
	"github.com/milk9111/hero/movement"
)

const defaultStreamSpeed = 64

// directionPath is a path string of n steps in one direction8.
func directionPath(direction8, n int) string {
	return strings.Repeat(strconv.Itoa(direction8), n)
}

// StreamState lets a stream carry the hero. The hero first snaps onto the stream,
// then follows its direction for two steps; a stream further on takes over
// from the free state.
type StreamState struct {
	BaseState

	stream   *level.Stream
	snapping bool
	onStream bool
}

func NewStreamState(h *Hero, s *level.Stream) *StreamState {
	return &StreamState{BaseState: newBaseState(h, "stream"), stream: s}
}

func (s *StreamState) speed() float64 {
	if s.stream.Speed > 0 {
		return s.stream.Speed
	}
	return defaultStreamSpeed
}

func (s *StreamState) Start(State) {
	h := s.hero
	h.ctx.Sprites.SetAnimation("stopped")
	s.snapping = true
	s.onStream = true
	h.SetMovement(movement.NewTargetEntity(h.ctx.Clock, s.stream, 0, 0, s.speed(), true))
}

func (s *StreamState) Stop(State) {
	s.hero.ClearMovement()
}

func (s *StreamState) Update() {
	h := s.hero
	if s.snapping {
		if h.movement != nil && !h.movement.IsFinished() {
			return
		}
		s.snapping = false
		path, err := movement.NewPath(h.ctx.Clock, directionPath(s.stream.Direction8, 2), s.speed(), false, false)
		if err != nil {
			h.log.WithError(err).WithField("stream", s.stream.Name()).Warn("invalid stream direction")
			h.StartFree()
			return
		}
		h.SetMovement(path)
		return
	}

	if h.movement == nil || h.movement.IsFinished() || !s.onStream {
		h.StartFree()
		return
	}
	if wanted := h.commands.WantedDirection8(); wanted >= 0 {
		h.SetDirection4(direction4For(wanted, h.direction4))
	}
	s.onStream = false
}

// Stream returns the stream carrying the hero.
func (s *StreamState) Stream() *level.Stream { return s.stream }

func (s *StreamState) CanAvoidTeletransporter() bool     { return true }
func (s *StreamState) CanAvoidStream(*level.Stream) bool { return true }
func (s *StreamState) CanStartSword() bool               { return s.stream.AllowAttack }
func (s *StreamState) CanControlMovement() bool          { return false }
func (s *StreamState) CanTakeJumper() bool               { return false }
func (s *StreamState) WantedMovementDirection8() int     { return s.stream.Direction8 }

func (s *StreamState) CanStartItem(item Item) bool {
	return s.stream.AllowItem && s.BaseState.CanStartItem(item)
}

// BackToSolidGroundState brings the hero back to a safe place after a fall
// or a bad landing, optionally waiting a delay once there.
type BackToSolidGroundState struct {
	BaseState

	target      common.Rect
	targetLayer level.Layer
	endDelay    time.Duration
	end         common.Countdown
	withSound   bool
	arrived     bool
}

func NewBackToSolidGroundState(h *Hero, useMemorized bool, endDelay time.Duration, withSound bool) *BackToSolidGroundState {
	s := &BackToSolidGroundState{
		BaseState: newBaseState(h, "back to solid ground"),
		endDelay:  endDelay,
		withSound: withSound,
	}
	if useMemorized && h.targetSolid != nil {
		s.target, s.targetLayer = *h.targetSolid, h.targetLayer
	} else {
		s.target, s.targetLayer = h.lastSolid, h.lastSolidLayer
	}
	s.track(&s.end)
	return s
}

// Target returns where the hero is brought back.
func (s *BackToSolidGroundState) Target() (x, y int, layer level.Layer) {
	return s.target.X, s.target.Y, s.targetLayer
}

func (s *BackToSolidGroundState) Start(State) {
	h := s.hero
	h.ctx.Sprites.SetAnimation("stopped")
	h.SetLayer(s.targetLayer)
	h.SetMovement(movement.NewTarget(h.ctx.Clock, s.target.X, s.target.Y, h.ctx.Tuning.BackToSolidGroundSpeed, true))
}

func (s *BackToSolidGroundState) Stop(State) {
	s.hero.ClearMovement()
}

func (s *BackToSolidGroundState) Update() {
	h := s.hero
	if !s.arrived {
		if h.movement != nil && !h.movement.IsFinished() {
			return
		}
		s.arrived = true
		h.ClearMovement()
		if s.endDelay > 0 {
			s.end.Start(s.now(), s.endDelay)
			return
		}
	}
	if s.end.Armed() && !s.end.Expired(s.now()) {
		return
	}
	if s.withSound {
		h.ctx.Sounds.Play("message_end")
	}
	h.StartStateFromGround()
}

func (s *BackToSolidGroundState) IsHeroVisible() bool { return s.arrived }

func (s *BackToSolidGroundState) IsTouchingGround() bool            { return false }
func (s *BackToSolidGroundState) AreCollisionsIgnored() bool        { return true }
func (s *BackToSolidGroundState) CanAvoidDeepWater() bool           { return true }
func (s *BackToSolidGroundState) CanAvoidHole() bool                { return true }
func (s *BackToSolidGroundState) CanAvoidIce() bool                 { return true }
func (s *BackToSolidGroundState) CanAvoidLava() bool                { return true }
func (s *BackToSolidGroundState) CanAvoidPrickle() bool             { return true }
func (s *BackToSolidGroundState) CanAvoidTeletransporter() bool     { return true }
func (s *BackToSolidGroundState) CanAvoidStream(*level.Stream) bool { return true }
func (s *BackToSolidGroundState) CanAvoidSensor() bool              { return true }
func (s *BackToSolidGroundState) CanAvoidSwitch() bool              { return true }
func (s *BackToSolidGroundState) CanAvoidExplosion() bool           { return true }
func (s *BackToSolidGroundState) CanStartSword() bool               { return false }
func (s *BackToSolidGroundState) CanStartItem(Item) bool            { return false }
func (s *BackToSolidGroundState) CanControlMovement() bool          { return false }
func (s *BackToSolidGroundState) CanTakeStairs() bool               { return false }
func (s *BackToSolidGroundState) CanTakeJumper() bool               { return false }
func (s *BackToSolidGroundState) WantedMovementDirection8() int     { return common.NoDirection }

// StairsWay tells whether the hero climbs or descends.
type StairsWay int

const (
	StairsUp StairsWay = iota
	StairsDown
)

func (w StairsWay) String() string {
	if w == StairsDown {
		return "down"
	}
	return "up"
}

const stairsSteps = 2

// StairsState walks the hero along stairs. Stairs inside a floor change
// its layer once climbed or descended.
type StairsState struct {
	BaseState

	stairs     *level.Stairs
	way        StairsWay
	direction8 int
	path       *movement.Path
	ref        carriedRef
}

func NewStairsState(h *Hero, stairs *level.Stairs, way StairsWay) *StairsState {
	s := &StairsState{
		BaseState: newBaseState(h, "stairs"),
		stairs:    stairs,
		way:       way,
	}
	s.direction8 = stairs.Direction4 * 2
	if way == StairsDown {
		s.direction8 = common.Opposite8(s.direction8)
	}
	s.ref = acquireCarried(h.carriedItem())
	if s.ref.item != nil {
		s.track(&s.ref.item.lift)
	}
	return s
}

// Way returns whether the hero goes up or down.
func (s *StairsState) Way() StairsWay { return s.way }

func (s *StairsState) Start(State) {
	h := s.hero
	if s.ref.item != nil {
		h.ctx.Sprites.SetAnimation("carrying_walking")
		h.ctx.Sprites.SetLiftedItem(s.ref.item)
	} else {
		h.ctx.Sprites.SetAnimation("walking")
	}
	h.SetDirection4(direction4For(s.direction8, h.direction4))
	h.ctx.Sounds.Play("stairs_" + s.way.String())

	path, err := movement.NewPath(h.ctx.Clock, directionPath(s.direction8, stairsSteps), h.ctx.Tuning.StairsSpeed, false, true)
	if err != nil {
		h.log.WithError(err).Warn("invalid stairs direction")
		h.StartStateFromGround()
		return
	}
	s.path = path
	h.SetMovement(path)
}

func (s *StairsState) Stop(next State) {
	s.hero.ClearMovement()
	s.ref.settle(s.hero, next)
}

func (s *StairsState) Update() {
	h := s.hero
	if s.ref.item != nil {
		s.ref.item.update(h)
	}
	if s.path == nil || !s.path.IsFinished() {
		return
	}
	if s.stairs.InsideFloor {
		if s.way == StairsUp {
			h.SetLayer(h.layer + 1)
		} else {
			h.SetLayer(h.layer - 1)
		}
	}
	if s.IsCurrent() {
		h.StartStateFromGround()
	}
}

func (s *StairsState) NotifyLayerChanged() {
	if s.ref.item != nil {
		s.ref.item.update(s.hero)
	}
}

func (s *StairsState) CarriedItem() *CarriedItem { return s.ref.item }

func (s *StairsState) PreviousCarriedItemBehavior() CarriedBehavior { return CarriedKeep }

func (s *StairsState) releaseCarried() { s.ref.drop() }

func (s *StairsState) WantedMovementDirection8() int { return s.direction8 }

func (s *StairsState) IsTouchingGround() bool   { return false }
func (s *StairsState) CanTakeStairs() bool      { return false }
func (s *StairsState) CanTakeJumper() bool      { return false }
func (s *StairsState) CanStartSword() bool      { return false }
func (s *StairsState) CanStartItem(Item) bool   { return false }
func (s *StairsState) CanControlMovement() bool { return false }
