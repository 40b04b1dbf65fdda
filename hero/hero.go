// Package hero is the state machine of the player-controlled character: the
// State contract with the free-state defaults, the concrete states, and the
// Hero context that dispatches events and performs transitions.
package hero

import (
	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/ecs/component"
	"github.com/milk9111/hero/level"
	"github.com/milk9111/hero/movement"
	"github.com/sirupsen/logrus"
)

// StateObserver is called after every completed transition.
type StateObserver func(h *Hero, previous, current string)

// Hero owns exactly one live State and routes updates, commands, collision
// results and suspension to it.
type Hero struct {
	ctx    Context
	log    *logrus.Entry
	entity ecs.Entity

	box        common.Rect
	layer      level.Layer
	direction4 int
	height     int

	state     State
	stopping  State
	depth     int
	graveyard []State

	movement  movement.Movement
	suspended bool

	commands Commands
	effects  CommandsEffects

	ground         level.Ground
	lastSolid      common.Rect
	lastSolidLayer level.Layer
	targetSolid    *common.Rect
	targetLayer    level.Layer

	invincible  common.Countdown
	jumper      *level.Jumper
	jumperTimer common.Countdown
	stairsUsed  level.Entity

	observers []StateObserver

	// OnTeletransport is called instead of moving the hero when a
	// teletransporter leads to another map.
	OnTeletransport func(t *level.Teletransporter)
	// OnPauseRequested is called when the pause command is pressed and
	// pausing is allowed.
	OnPauseRequested func()
}

// New places a hero at (x, y) in the state matching the ground there.
func New(ctx Context, x, y int, layer level.Layer) *Hero {
	ctx.fillDefaults()
	h := &Hero{
		ctx:        ctx,
		log:        ctx.Log.WithField("component", "hero"),
		layer:      layer,
		direction4: 3,
		effects:    defaultEffects(),
	}
	h.box = common.NewRect(x, y, ctx.Tuning.Width, ctx.Tuning.Height)
	h.entity = ecs.CreateEntity(ctx.World)
	_ = ecs.Add(ctx.World, h.entity, component.HeroTagComponent.Kind(), &component.HeroTag{})
	_ = ecs.Add(ctx.World, h.entity, component.TransformComponent.Kind(), &component.Transform{})
	h.syncTransform()

	h.ground = h.groundBelow()
	h.lastSolid, h.lastSolidLayer = h.box, layer
	h.ctx.Sprites.SetDirection(h.direction4)
	h.StartStateFromGround()
	return h
}

func (h *Hero) Context() *Context { return &h.ctx }

func (h *Hero) Log() *logrus.Entry { return h.log }

// Entity returns the world entity mirroring the hero.
func (h *Hero) Entity() ecs.Entity { return h.entity }

func (h *Hero) State() State { return h.state }

func (h *Hero) StateName() string {
	if h.state == nil {
		return ""
	}
	return h.state.Name()
}

func (h *Hero) Bounds() common.Rect { return h.box }

func (h *Hero) Layer() level.Layer { return h.layer }

// Height is the display elevation above the ground, non-zero while jumping.
func (h *Hero) Height() int { return h.height }

func (h *Hero) Direction4() int { return h.direction4 }

func (h *Hero) SetDirection4(direction4 int) {
	h.direction4 = direction4 & 3
	h.ctx.Sprites.SetDirection(h.direction4)
}

func (h *Hero) Ground() level.Ground { return h.ground }

func (h *Hero) Movement() movement.Movement { return h.movement }

func (h *Hero) Commands() *Commands { return &h.commands }

func (h *Hero) Effects() *CommandsEffects { return &h.effects }

func (h *Hero) IsSuspended() bool { return h.suspended }

// IsInvincible reports whether the hero is blinking after a hit.
func (h *Hero) IsInvincible() bool {
	return h.invincible.Armed() && !h.invincible.Expired(h.ctx.Clock.Now())
}

// OnStateChanged registers an observer of transitions.
func (h *Hero) OnStateChanged(fn StateObserver) {
	if fn != nil {
		h.observers = append(h.observers, fn)
	}
}

// SetState replaces the current state. The outgoing state is stopped
// before the incoming one starts, and it is destroyed only once the
// outermost transition returns. Setting the current state again is a no-op.
func (h *Hero) SetState(next State) {
	if next == nil {
		invariant(ErrNilState, "from %s", h.StateName())
	}
	if next == h.state {
		return
	}
	if h.stopping != nil {
		invariant(ErrTransitionInStop, "%s requested while %s stops", next.Name(), h.stopping.Name())
	}
	nc := next.core()
	if nc.phase != phaseCreated {
		invariant(ErrStateReused, "%s", next.Name())
	}
	nc.self = next

	h.depth++
	defer h.endTransition()

	previous := h.state
	if previous != nil {
		pc := previous.core()
		h.stopping = previous
		pc.phase = phaseStopping
		previous.Stop(next)
		pc.phase = phaseStopped
		h.stopping = nil
		h.graveyard = append(h.graveyard, previous)
	}

	h.state = next
	nc.phase = phaseStarted
	if h.suspended {
		next.SetSuspended(true)
	}
	next.Start(previous)

	if h.state != next {
		// Start already moved on to another state.
		return
	}
	from := ""
	if previous != nil {
		from = previous.Name()
	}
	h.log.WithFields(logrus.Fields{"from": from, "to": next.Name()}).Debug("state changed")
	for _, fn := range h.observers {
		fn(h, from, next.Name())
	}
}

func (h *Hero) endTransition() {
	h.depth--
	if h.depth > 0 {
		return
	}
	old := h.graveyard
	h.graveyard = nil
	for _, st := range old {
		if st == h.state {
			invariant(ErrStateReused, "destroying the current state %s", st.Name())
		}
		if r, ok := st.(interface{ releaseCarried() }); ok {
			r.releaseCarried()
		}
		st.core().phase = phaseDestroyed
	}
}

// Update runs one simulation step: movement, collisions with map entities,
// then the state.
func (h *Hero) Update() {
	if h.suspended || h.state == nil {
		return
	}
	h.updateMovement()
	h.checkCollisions()
	h.state.Update()

	now := h.ctx.Clock.Now()
	if h.invincible.Armed() && h.invincible.Expired(now) {
		h.invincible.Stop()
		h.ctx.Sprites.SetBlinking(false)
	}
	if h.state.IsTouchingGround() && h.ground.IsSolid() && !h.state.AreCollisionsIgnored() {
		h.lastSolid, h.lastSolidLayer = h.box, h.layer
	}
	h.syncTransform()
}

func (h *Hero) updateMovement() {
	if h.movement == nil {
		return
	}
	h.movement.Update()
	if j, ok := h.movement.(*movement.Jump); ok {
		h.height = j.Height()
	}
}

func (h *Hero) syncTransform() {
	t, ok := ecs.Get(h.ctx.World, h.entity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.X, t.Y = float64(h.box.X), float64(h.box.Y)
	t.Z = float64(h.height)
	t.Width, t.Height = h.box.Width, h.box.Height
	t.Layer = int(h.layer)
}

// SetSuspended pauses or resumes the hero, its movement, its sprites and
// its state. Dates are shifted on resume by the time spent suspended.
func (h *Hero) SetSuspended(suspended bool) {
	if h.suspended == suspended {
		return
	}
	h.suspended = suspended
	now := h.ctx.Clock.Now()
	h.invincible.SetSuspended(suspended, now)
	h.jumperTimer.SetSuspended(suspended, now)
	if h.movement != nil {
		h.movement.SetSuspended(suspended)
	}
	h.ctx.Sprites.SetSuspended(suspended)
	if h.state != nil {
		h.state.SetSuspended(suspended)
	}
}

// SetMovement attaches a movement to the hero, replacing the previous one.
func (h *Hero) SetMovement(m movement.Movement) {
	h.ClearMovement()
	if m == nil {
		return
	}
	h.movement = m
	m.Attach(h)
	if h.suspended {
		m.SetSuspended(true)
	}
}

// ClearMovement stops and detaches the current movement.
func (h *Hero) ClearMovement() {
	if h.movement == nil {
		return
	}
	m := h.movement
	h.movement = nil
	m.Stop()
	m.Attach(nil)
	h.height = 0
}

func (h *Hero) Position() (int, int) { return h.box.X, h.box.Y }

// SetPosition moves the hero and reacts to the ground below.
func (h *Hero) SetPosition(x, y int) {
	if x == h.box.X && y == h.box.Y {
		return
	}
	h.box.X, h.box.Y = x, y
	h.state.NotifyPositionChanged()
	h.checkGround()
}

// TestObstacles reports whether translating the hero would collide.
func (h *Hero) TestObstacles(dx, dy int) bool {
	if h.state.AreCollisionsIgnored() {
		return false
	}
	candidate := h.box.Translate(dx, dy)
	if h.ctx.Map.CollidesWithObstacles(h.layer, candidate, h) {
		return true
	}
	_, blocked := h.liftableOverlapping(candidate)
	return blocked
}

func (h *Hero) NotifyObstacleReached() {
	h.state.NotifyObstacleReached()
}

// IsGroundObstacle asks the current state.
func (h *Hero) IsGroundObstacle(g level.Ground) bool {
	return h.state.IsGroundObstacle(g)
}

// IsEntityObstacle asks the current state about the map entity kinds whose
// traversability depends on what the hero is doing.
func (h *Hero) IsEntityObstacle(e level.Entity, candidate common.Rect) bool {
	switch v := e.(type) {
	case *level.Stairs:
		return h.state.IsStairsObstacle(v)
	case *level.Jumper:
		return h.state.IsJumperObstacle(v, candidate)
	case *level.Separator:
		return h.state.IsSeparatorObstacle(v)
	case *level.Sensor:
		return h.state.IsSensorObstacle(v)
	case *level.Teletransporter:
		return h.state.IsTeletransporterObstacle(v)
	case *level.Stream:
		return h.state.IsStreamObstacle(v)
	case *level.Block, *level.Hookable:
		return true
	}
	return false
}

// SetLayer moves the hero to another layer.
func (h *Hero) SetLayer(layer level.Layer) {
	if layer == h.layer || !layer.Valid() {
		return
	}
	h.layer = layer
	h.state.NotifyLayerChanged()
	h.checkGround()
}

// SetMap places the hero on another map.
func (h *Hero) SetMap(m Map, x, y int, layer level.Layer) {
	h.ctx.Map = m
	h.box.X, h.box.Y = x, y
	h.layer = layer
	h.jumper = nil
	h.stairsUsed = nil
	h.lastSolid, h.lastSolidLayer = h.box, layer
	h.targetSolid = nil
	h.state.NotifyMapChanged()
	h.ground = level.GroundEmpty
	h.checkGround()
	h.syncTransform()
}

// NotifyCommandPressed routes a command to the state, then applies the
// default handling if the state did not consume it.
func (h *Hero) NotifyCommandPressed(c Command) {
	if !h.commands.press(c) || h.state == nil {
		return
	}
	if h.state.NotifyCommandPressed(c) {
		return
	}
	if c == CommandPause && h.effects.PauseAllowed && h.OnPauseRequested != nil {
		h.OnPauseRequested()
	}
}

func (h *Hero) NotifyCommandReleased(c Command) {
	if !h.commands.release(c) || h.state == nil {
		return
	}
	h.state.NotifyCommandReleased(c)
}

// SimulateCommandPressed drives the hero as if the player pressed a command.
func (h *Hero) SimulateCommandPressed(c Command) {
	h.log.WithField("command", c.String()).Debug("simulated command pressed")
	h.NotifyCommandPressed(c)
}

func (h *Hero) SimulateCommandReleased(c Command) {
	h.log.WithField("command", c.String()).Debug("simulated command released")
	h.NotifyCommandReleased(c)
}

// NotifyAttackedEnemy reports the outcome of an attack by the hero or by an
// entity the current state controls.
func (h *Hero) NotifyAttackedEnemy(enemy *level.Enemy, reaction EnemyReaction) {
	h.state.NotifyAttackedEnemy(enemy, reaction)
}

// Hurt damages the hero unless the state or a recent hit protects it. A nil
// attacker is damage from the ground.
func (h *Hero) Hurt(attacker level.Entity, damage int) bool {
	if h.IsInvincible() || !h.state.CanBeHurt(attacker) {
		return false
	}
	h.ctx.Sounds.Play("hero_hurt")
	h.ctx.Equipment.RemoveLife(damage)
	h.invincible.Start(h.ctx.Clock.Now(), h.ctx.Tuning.InvincibilityDuration)
	h.ctx.Sprites.SetBlinking(true)
	h.log.WithFields(logrus.Fields{"damage": damage, "state": h.StateName()}).Debug("hero hurt")
	h.SetState(NewHurtState(h, attacker))
	return true
}

// isMovingTowards8 reports whether the state wants to move in a direction8.
func (h *Hero) isMovingTowards8(direction8 int) bool {
	return h.state != nil && h.state.WantedMovementDirection8() == direction8
}

func (h *Hero) groundPoint() (int, int) {
	return h.box.Center()
}

func (h *Hero) groundBelow() level.Ground {
	x, y := h.groundPoint()
	return h.ctx.Map.GroundAt(h.layer, x, y)
}

// SetTargetSolidGround memorizes where BackToSolidGround should bring the
// hero when asked to use memorized coordinates.
func (h *Hero) SetTargetSolidGround(x, y int, layer level.Layer) {
	r := common.NewRect(x, y, h.box.Width, h.box.Height)
	h.targetSolid = &r
	h.targetLayer = layer
}

func (h *Hero) ResetTargetSolidGround() {
	h.targetSolid = nil
}

// LastSolidGround returns the last position where the hero stood on solid
// ground.
func (h *Hero) LastSolidGround() (x, y int, layer level.Layer) {
	return h.lastSolid.X, h.lastSolid.Y, h.lastSolidLayer
}
