package hero

import (
	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/level"
	"github.com/milk9111/hero/movement"
)

const blockMoveSteps = 2

// blockMover lets a movement push a block around the map.
type blockMover struct {
	block   *level.Block
	m       Map
	blocked bool
}

func (b *blockMover) Position() (int, int) { return b.block.Position() }

func (b *blockMover) SetPosition(x, y int) { b.block.SetPosition(x, y) }

func (b *blockMover) TestObstacles(dx, dy int) bool {
	box := b.block.Bounds().Translate(dx, dy)
	return b.m.CollidesWithObstacles(b.block.Layer(), box, b.block)
}

func (b *blockMover) NotifyObstacleReached() { b.blocked = true }

// GrabbingState holds a block while the action command is down. The arrows
// then push or pull it.
type GrabbingState struct {
	BaseState
	block *level.Block
}

func NewGrabbingState(h *Hero, block *level.Block) *GrabbingState {
	return &GrabbingState{BaseState: newBaseState(h, "grabbing"), block: block}
}

func (s *GrabbingState) Start(State) {
	h := s.hero
	h.ClearMovement()
	h.ctx.Sprites.SetAnimation("grabbing")
	h.ctx.Equipment.NotifyAbilityUsed(AbilityGrab)
}

func (s *GrabbingState) Update() {
	h := s.hero
	if !h.commands.IsPressed(CommandAction) || h.FacingBlock() != s.block {
		h.StartFree()
		return
	}
	forward := h.direction4 * 2
	switch h.commands.WantedDirection8() {
	case forward:
		if s.block.Pushable && h.ctx.Equipment.HasAbility(AbilityPush) {
			h.SetState(NewPushingState(h, s.block, h.direction4))
		}
	case common.Opposite8(forward):
		if s.block.Pullable && h.ctx.Equipment.HasAbility(AbilityPull) {
			h.SetState(NewPullingState(h, s.block))
		}
	}
}

func (s *GrabbingState) NotifyCommandReleased(c Command) bool {
	if c == CommandAction {
		s.hero.StartFree()
		return true
	}
	return false
}

// Block returns the grabbed block.
func (s *GrabbingState) Block() *level.Block { return s.block }

func (s *GrabbingState) IsGrabbingOrPulling() bool     { return true }
func (s *GrabbingState) CanStartSword() bool           { return false }
func (s *GrabbingState) CanStartItem(Item) bool        { return false }
func (s *GrabbingState) CanControlMovement() bool      { return false }
func (s *GrabbingState) CanTakeStairs() bool           { return false }
func (s *GrabbingState) CanTakeJumper() bool           { return false }
func (s *GrabbingState) WantedMovementDirection8() int { return common.NoDirection }

// isBadGroundObstacle keeps a hero moving a block away from hazards.
func isBadGroundObstacle(g level.Ground) bool {
	switch g {
	case level.GroundShallowWater, level.GroundDeepWater, level.GroundHole, level.GroundLava, level.GroundPrickles:
		return true
	}
	return false
}

// PushingState moves a block one tile ahead, the hero following it.
type PushingState struct {
	BaseState

	block      *level.Block
	direction4 int
	mover      *blockMover
	path       *movement.Path
	offsetX    int
	offsetY    int
}

func NewPushingState(h *Hero, block *level.Block, direction4 int) *PushingState {
	return &PushingState{BaseState: newBaseState(h, "pushing"), block: block, direction4: direction4}
}

func (s *PushingState) Start(State) {
	h := s.hero
	h.ClearMovement()
	h.SetDirection4(s.direction4)
	h.ctx.Sprites.SetAnimation("pushing")
	h.ctx.Sounds.Play("hero_pushes")
	h.ctx.Equipment.NotifyAbilityUsed(AbilityPush)

	bx, by := s.block.Position()
	s.offsetX, s.offsetY = h.box.X-bx, h.box.Y-by
	s.mover = &blockMover{block: s.block, m: h.ctx.Map}
	path, err := movement.NewPath(h.ctx.Clock, directionPath(s.direction4*2, blockMoveSteps), h.ctx.Tuning.PushSpeed, false, false)
	if err != nil {
		h.log.WithError(err).Warn("invalid push direction")
		h.StartFree()
		return
	}
	s.path = path
	path.Attach(s.mover)
	if h.suspended {
		path.SetSuspended(true)
	}
}

func (s *PushingState) Stop(State) {
	if s.path != nil {
		s.path.Stop()
		s.path.Attach(nil)
	}
}

func (s *PushingState) SetSuspended(suspended bool) {
	s.BaseState.SetSuspended(suspended)
	if s.path != nil {
		s.path.SetSuspended(suspended)
	}
}

func (s *PushingState) Update() {
	h := s.hero
	s.path.Update()
	bx, by := s.block.Position()
	h.SetPosition(bx+s.offsetX, by+s.offsetY)
	if !s.IsCurrent() {
		return
	}
	if s.mover.blocked || s.path.IsFinished() {
		h.log.WithField("block", s.block.Name()).Debug("block pushed")
		h.StartStateFromGround()
	}
}

// Block returns the pushed block.
func (s *PushingState) Block() *level.Block { return s.block }

func (s *PushingState) IsGroundObstacle(g level.Ground) bool {
	return s.BaseState.IsGroundObstacle(g) || isBadGroundObstacle(g)
}

func (s *PushingState) CanStartSword() bool           { return false }
func (s *PushingState) CanStartItem(Item) bool        { return false }
func (s *PushingState) CanControlMovement() bool      { return false }
func (s *PushingState) CanTakeStairs() bool           { return false }
func (s *PushingState) CanTakeJumper() bool           { return false }
func (s *PushingState) WantedMovementDirection8() int { return s.direction4 * 2 }

// PullingState walks the hero back one tile, dragging a block.
type PullingState struct {
	BaseState

	block   *level.Block
	path    *movement.Path
	offsetX int
	offsetY int
}

func NewPullingState(h *Hero, block *level.Block) *PullingState {
	return &PullingState{BaseState: newBaseState(h, "pulling"), block: block}
}

func (s *PullingState) Start(State) {
	h := s.hero
	h.ctx.Sprites.SetAnimation("pulling")
	h.ctx.Equipment.NotifyAbilityUsed(AbilityPull)

	bx, by := s.block.Position()
	s.offsetX, s.offsetY = bx-h.box.X, by-h.box.Y
	back := common.Opposite8(h.direction4 * 2)
	path, err := movement.NewPath(h.ctx.Clock, directionPath(back, blockMoveSteps), h.ctx.Tuning.PushSpeed, false, false)
	if err != nil {
		h.log.WithError(err).Warn("invalid pull direction")
		h.StartFree()
		return
	}
	s.path = path
	h.SetMovement(path)
}

func (s *PullingState) Stop(State) {
	s.hero.ClearMovement()
}

func (s *PullingState) NotifyPositionChanged() {
	h := s.hero
	s.block.SetPosition(h.box.X+s.offsetX, h.box.Y+s.offsetY)
}

func (s *PullingState) Update() {
	h := s.hero
	if s.path == nil {
		return
	}
	if s.path.ObstacleReachedCount() == 0 && !s.path.IsFinished() {
		return
	}
	h.log.WithField("block", s.block.Name()).Debug("block pulled")
	if h.commands.IsPressed(CommandAction) && h.FacingBlock() == s.block {
		h.SetState(NewGrabbingState(h, s.block))
		return
	}
	h.StartStateFromGround()
}

// Block returns the pulled block.
func (s *PullingState) Block() *level.Block { return s.block }

func (s *PullingState) IsGroundObstacle(g level.Ground) bool {
	return s.BaseState.IsGroundObstacle(g) || isBadGroundObstacle(g)
}

func (s *PullingState) IsGrabbingOrPulling() bool                 { return true }
func (s *PullingState) IsStreamObstacle(*level.Stream) bool       { return true }
func (s *PullingState) IsSeparatorObstacle(*level.Separator) bool { return true }
func (s *PullingState) CanPickTreasure(string) bool               { return false }
func (s *PullingState) CanStartSword() bool                       { return false }
func (s *PullingState) CanStartItem(Item) bool                    { return false }
func (s *PullingState) CanControlMovement() bool                  { return false }
func (s *PullingState) CanTakeStairs() bool                       { return false }
func (s *PullingState) CanTakeJumper() bool                       { return false }
func (s *PullingState) WantedMovementDirection8() int             { return common.NoDirection }
