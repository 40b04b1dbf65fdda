package hero

import (
	"time"

	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/ecs/component"
	"github.com/milk9111/hero/level"
	"github.com/sirupsen/logrus"
)

const projectileSize = 8

// tickSeconds is the duration of one update, for per-tick velocities.
func (h *Hero) tickSeconds() float64 {
	step := common.DefaultStep
	if c, ok := h.ctx.Clock.(interface{ StepSize() time.Duration }); ok {
		step = c.StepSize()
	}
	return step.Seconds()
}

// spawnProjectile puts a weapon owned by the hero on the map, flying in a
// direction8 from the hero's center.
func (h *Hero) spawnProjectile(kind component.ProjectileKind, direction8 int, speed, maxDistance float64) ecs.Entity {
	w := h.ctx.World
	cx, cy := h.box.Center()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      float64(cx - projectileSize/2),
		Y:      float64(cy - projectileSize/2),
		Width:  projectileSize,
		Height: projectileSize,
		Layer:  int(h.layer),
	})
	_ = ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Kind:        kind,
		Velocity:    common.Direction8Vector(direction8).Mult(speed * h.tickSeconds()),
		MaxDistance: maxDistance,
		Owner:       uint64(h.entity),
	})
	h.log.WithFields(logrus.Fields{"projectile": kind.String(), "direction8": direction8}).Debug("projectile thrown")
	return e
}

// hasProjectile reports whether a weapon of this kind thrown by the hero is
// still on the map.
func (h *Hero) hasProjectile(kind component.ProjectileKind) bool {
	w := h.ctx.World
	for _, e := range w.Query(component.ProjectileComponent.Kind()) {
		p, ok := ecs.Get(w, e, component.ProjectileComponent.Kind())
		if ok && p.Kind == kind && ecs.Entity(p.Owner) == h.entity {
			return true
		}
	}
	return false
}

// BoomerangState prepares a boomerang throw. The throw direction is the
// diagonal pressed by the player, or the facing direction.
type BoomerangState struct {
	BaseState

	maxDistance float64
	speed       float64
	pressed8    int
}

func NewBoomerangState(h *Hero, maxDistance, speed float64) *BoomerangState {
	return &BoomerangState{
		BaseState:   newBaseState(h, "boomerang"),
		maxDistance: maxDistance,
		speed:       speed,
		pressed8:    common.NoDirection,
	}
}

func (s *BoomerangState) Start(State) {
	h := s.hero
	if h.hasProjectile(component.ProjectileBoomerang) {
		h.StartFree()
		return
	}
	h.ClearMovement()
	h.ctx.Sprites.SetAnimation("boomerang")
	s.pressed8 = h.commands.WantedDirection8()
}

func (s *BoomerangState) Update() {
	h := s.hero
	if !h.ctx.Sprites.IsAnimationFinished() {
		return
	}
	if s.pressed8 == common.NoDirection {
		s.pressed8 = h.commands.WantedDirection8()
	}
	direction8 := s.pressed8
	if direction8 == common.NoDirection || direction8%2 == 0 {
		direction8 = h.direction4 * 2
	}
	h.spawnProjectile(component.ProjectileBoomerang, direction8, s.speed, s.maxDistance)
	h.ctx.Sounds.Play("boomerang")
	h.StartFree()
}

func (s *BoomerangState) CanAvoidStream(*level.Stream) bool { return true }
func (s *BoomerangState) CanStartSword() bool               { return false }
func (s *BoomerangState) CanStartItem(Item) bool            { return false }
func (s *BoomerangState) CanControlMovement() bool          { return false }
func (s *BoomerangState) WantedMovementDirection8() int     { return common.NoDirection }

// BowState draws the bow and shoots an arrow when the animation ends.
type BowState struct {
	BaseState
}

func NewBowState(h *Hero) *BowState {
	return &BowState{BaseState: newBaseState(h, "bow")}
}

func (s *BowState) Start(State) {
	s.hero.ClearMovement()
	s.hero.ctx.Sprites.SetAnimation("bow")
}

func (s *BowState) Update() {
	h := s.hero
	if !h.ctx.Sprites.IsAnimationFinished() {
		return
	}
	h.ctx.Sounds.Play("bow")
	h.spawnProjectile(component.ProjectileArrow, h.direction4*2, h.ctx.Tuning.ArrowSpeed, 0)
	h.StartFree()
}

func (s *BowState) CanAvoidStream(*level.Stream) bool { return true }
func (s *BowState) CanStartSword() bool               { return false }
func (s *BowState) CanStartItem(Item) bool            { return false }
func (s *BowState) CanControlMovement() bool          { return false }
func (s *BowState) WantedMovementDirection8() int     { return common.NoDirection }
