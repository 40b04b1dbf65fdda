package hero

import (
	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/level"
	"github.com/milk9111/hero/movement"
	"github.com/sirupsen/logrus"
)

// strikeEnemies hits every live enemy in front of the hero once per swing.
func (h *Hero) strikeEnemies(hit map[*level.Enemy]bool) {
	for _, e := range h.ctx.Map.EntitiesOverlapping(h.layer, h.facingBox()) {
		enemy, ok := e.(*level.Enemy)
		if !ok || !enemy.IsAlive() || hit[enemy] {
			continue
		}
		hit[enemy] = true
		enemy.Life--
		h.log.WithFields(logrus.Fields{"enemy": enemy.Name(), "life": enemy.Life}).Debug("enemy hit")
		h.NotifyAttackedEnemy(enemy, ReactionHurt)
	}
}

// SwordSwingingState plays one sword swing, then goes back to walking.
type SwordSwingingState struct {
	BaseState

	attacked bool
	hit      map[*level.Enemy]bool
}

func NewSwordSwingingState(h *Hero) *SwordSwingingState {
	return &SwordSwingingState{
		BaseState: newBaseState(h, "sword swinging"),
		hit:       make(map[*level.Enemy]bool),
	}
}

func (s *SwordSwingingState) Start(State) {
	h := s.hero
	h.ClearMovement()
	h.ctx.Sprites.SetAnimation("sword")
	h.ctx.Sounds.Play("sword1")
	s.attacked = false
}

func (s *SwordSwingingState) Stop(State) {
	s.hero.ClearMovement()
}

func (s *SwordSwingingState) Update() {
	h := s.hero
	if !h.ctx.Sprites.IsAnimationFinished() {
		h.strikeEnemies(s.hit)
		return
	}
	h.StartStateFromGround()
}

func (s *SwordSwingingState) NotifyAttackedEnemy(_ *level.Enemy, reaction EnemyReaction) {
	if reaction != ReactionIgnored {
		s.attacked = true
	}
}

// Attacked reports whether the swing touched an enemy that reacted.
func (s *SwordSwingingState) Attacked() bool { return s.attacked }

func (s *SwordSwingingState) IsCuttingWithSword() bool {
	return !s.hero.ctx.Sprites.IsAnimationFinished()
}

func (s *SwordSwingingState) CanStartSword() bool                                   { return false }
func (s *SwordSwingingState) CanStartItem(Item) bool                                { return false }
func (s *SwordSwingingState) CanTakeStairs() bool                                   { return false }
func (s *SwordSwingingState) CanTakeJumper() bool                                   { return false }
func (s *SwordSwingingState) CanControlMovement() bool                              { return false }
func (s *SwordSwingingState) WantedMovementDirection8() int                         { return common.NoDirection }
func (s *SwordSwingingState) IsTeletransporterObstacle(*level.Teletransporter) bool { return true }

type runningPhase int

const (
	runningPreparing runningPhase = iota
	runningRunning
	runningBouncing
)

// RunningState charges in the facing direction while the run command is
// held, then runs until something stops the hero. Hitting a wall bounces the
// hero back.
type RunningState struct {
	BaseState

	command    Command
	phase      runningPhase
	direction4 int
	next       common.Countdown
	sound      common.Countdown
	hit        map[*level.Enemy]bool
}

func NewRunningState(h *Hero, command Command) *RunningState {
	s := &RunningState{
		BaseState: newBaseState(h, "running"),
		command:   command,
		hit:       make(map[*level.Enemy]bool),
	}
	s.track(&s.next, &s.sound)
	return s
}

func (s *RunningState) Start(State) {
	h := s.hero
	now := s.now()
	h.ClearMovement()
	s.direction4 = h.direction4
	s.phase = runningPreparing
	h.ctx.Sprites.SetAnimation("running_stopped")
	s.next.Start(now, h.ctx.Tuning.RunningPrepare)
	s.sound.Start(now, 0)
	h.ctx.Equipment.NotifyAbilityUsed(AbilityRun)
}

func (s *RunningState) Stop(State) {
	s.hero.ClearMovement()
}

func (s *RunningState) Update() {
	h := s.hero
	now := s.now()
	if s.phase != runningBouncing && s.sound.Expired(now) {
		h.ctx.Sounds.Play("running")
		s.sound.Extend(h.ctx.Tuning.RunningSoundPeriod)
	}

	switch s.phase {
	case runningPreparing:
		if s.next.Expired(now) {
			s.next.Stop()
			s.phase = runningRunning
			h.SetMovement(newRunMovement(h, s.direction4))
			h.ctx.Sprites.SetAnimation("running")
		}
	case runningRunning:
		if s.IsCuttingWithSword() {
			h.strikeEnemies(s.hit)
		}
		if h.movement == nil || h.movement.IsFinished() {
			h.StartStateFromGround()
		}
	case runningBouncing:
		if h.movement == nil || h.movement.IsFinished() {
			h.StartStateFromGround()
		}
	}
}

func (s *RunningState) NotifyCommandReleased(c Command) bool {
	if c == s.command && s.phase == runningPreparing {
		s.hero.StartFree()
		return true
	}
	return false
}

func (s *RunningState) NotifyCommandPressed(c Command) bool {
	h := s.hero
	if d := c.Direction4(); d >= 0 && s.phase == runningRunning && d != s.direction4 {
		h.StartStateFromGround()
		return true
	}
	return s.BaseState.NotifyCommandPressed(c)
}

// NotifyObstacleReached bounces the hero back when running into a wall.
func (s *RunningState) NotifyObstacleReached() {
	if s.phase != runningRunning {
		return
	}
	h := s.hero
	s.phase = runningBouncing
	h.ctx.Sounds.Play("running_obstacle")
	h.ctx.Sprites.SetAnimation("hurt")
	back := common.Opposite8(s.direction4 * 2)
	h.SetMovement(newBounceMovement(h, back))
}

func (s *RunningState) isBouncing() bool { return s.phase == runningBouncing }

func (s *RunningState) WantedMovementDirection8() int {
	if s.phase == runningRunning {
		return s.direction4 * 2
	}
	return common.NoDirection
}

func (s *RunningState) IsCuttingWithSword() bool {
	return s.phase == runningRunning && s.hero.ctx.Equipment.HasAbility(AbilitySword)
}

func (s *RunningState) IsTouchingGround() bool  { return !s.isBouncing() }
func (s *RunningState) CanAvoidDeepWater() bool { return s.isBouncing() }
func (s *RunningState) CanAvoidHole() bool      { return s.isBouncing() }
func (s *RunningState) CanAvoidLava() bool      { return s.isBouncing() }
func (s *RunningState) CanAvoidPrickle() bool   { return s.isBouncing() }

func (s *RunningState) CanAvoidTeletransporter() bool { return s.isBouncing() }

func (s *RunningState) CanAvoidStream(*level.Stream) bool { return s.isBouncing() }

func (s *RunningState) CanBeHurt(level.Entity) bool { return !s.isBouncing() }

func (s *RunningState) CanTakeJumper() bool { return s.phase == runningRunning }

func (s *RunningState) CanTakeStairs() bool { return s.phase != runningBouncing }

func (s *RunningState) CanStartSword() bool { return false }

func (s *RunningState) CanStartItem(Item) bool { return false }

func (s *RunningState) CanControlMovement() bool { return false }

func (s *RunningState) IsSensorObstacle(*level.Sensor) bool { return s.phase == runningRunning }

func newRunMovement(h *Hero, direction4 int) movement.Movement {
	return movement.NewStraight(h.ctx.Clock, h.ctx.Tuning.RunningSpeed, common.Direction8Angle(direction4*2), false)
}

func newBounceMovement(h *Hero, direction8 int) movement.Movement {
	return movement.NewJump(h.ctx.Clock, direction8, h.ctx.Tuning.BounceDistance, h.ctx.Tuning.JumpDelay, true)
}
