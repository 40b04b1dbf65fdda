package hero

import (
	"time"

	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/ecs/component"
	"github.com/milk9111/hero/level"
)

func (h *Hero) StartFree() { h.SetState(NewFreeState(h)) }

func (h *Hero) StartSword() { h.SetState(NewSwordSwingingState(h)) }

func (h *Hero) StartItem(item Item) { h.SetState(NewUsingItemState(h, item)) }

func (h *Hero) StartRunning() { h.SetState(NewRunningState(h, CommandAction)) }

func (h *Hero) StartHookshot() { h.SetState(NewHookshotState(h)) }

func (h *Hero) StartBow() { h.SetState(NewBowState(h)) }

func (h *Hero) StartFalling() { h.SetState(NewFallingState(h)) }

func (h *Hero) StartPlunging() { h.SetState(NewPlungingState(h)) }

// StartJumping makes the hero jump distance pixels in a direction8.
func (h *Hero) StartJumping(direction8, distance int, ignoreObstacles, withSound bool) {
	h.SetState(NewJumpingState(h, direction8, distance, ignoreObstacles, withSound))
}

// StartBoomerang throws a boomerang. Zero values select the tuning.
func (h *Hero) StartBoomerang(maxDistance, speed float64) {
	if maxDistance <= 0 {
		maxDistance = h.ctx.Tuning.BoomerangDistance
	}
	if speed <= 0 {
		speed = h.ctx.Tuning.BoomerangSpeed
	}
	h.SetState(NewBoomerangState(h, maxDistance, speed))
}

// StartLifting lifts a world entity carrying a Liftable component.
func (h *Hero) StartLifting(e ecs.Entity) {
	h.SetState(NewLiftingState(h, newCarriedItem(h, e)))
}

func (h *Hero) StartBackToSolidGround(useMemorized bool, endDelay time.Duration, withSound bool) {
	h.SetState(NewBackToSolidGroundState(h, useMemorized, endDelay, withSound))
}

func (h *Hero) StartTreasure(item string, variant int) {
	h.SetState(NewTreasureState(h, item, variant))
}

// StartForcedWalking makes the hero follow a path of direction8 digits.
func (h *Hero) StartForcedWalking(path string, loop, ignoreObstacles bool) error {
	st, err := NewForcedWalkingState(h, path, loop, ignoreObstacles)
	if err != nil {
		return err
	}
	h.SetState(st)
	return nil
}

func (h *Hero) StartGrabbing(block *level.Block) { h.SetState(NewGrabbingState(h, block)) }

// PickTreasure gives an item to the hero if the state allows it.
func (h *Hero) PickTreasure(item string, variant int) bool {
	if !h.state.CanPickTreasure(item) {
		return false
	}
	h.StartTreasure(item, variant)
	return true
}

// Freeze stops the hero until Unfreeze, typically during a cutscene.
func (h *Hero) Freeze() {
	if _, ok := h.state.(*FreezedState); ok {
		return
	}
	h.SetState(NewFreezedState(h))
}

func (h *Hero) Unfreeze() {
	if _, ok := h.state.(*FreezedState); ok {
		h.StartStateFromGround()
	}
}

// facingBox is the strip right in front of the hero.
func (h *Hero) facingBox() common.Rect {
	b := h.box
	switch h.direction4 {
	case 0:
		return common.NewRect(b.Right(), b.Y+4, 4, b.Height-8)
	case 1:
		return common.NewRect(b.X+4, b.Y-4, b.Width-8, 4)
	case 2:
		return common.NewRect(b.X-4, b.Y+4, 4, b.Height-8)
	}
	return common.NewRect(b.X+4, b.Bottom(), b.Width-8, 4)
}

// FacingLiftable returns a free liftable world entity in front of the
// hero.
func (h *Hero) FacingLiftable() (ecs.Entity, bool) {
	return h.liftableOverlapping(h.facingBox())
}

// liftableOverlapping finds a liftable entity resting on the hero's layer.
func (h *Hero) liftableOverlapping(box common.Rect) (ecs.Entity, bool) {
	w := h.ctx.World
	for _, e := range w.Query(component.LiftableComponent.Kind(), component.TransformComponent.Kind()) {
		if ecs.Has(w, e, component.CarriedComponent.Kind()) ||
			ecs.Has(w, e, component.ThrownComponent.Kind()) ||
			ecs.Has(w, e, component.BrokenComponent.Kind()) {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if level.Layer(t.Layer) != h.layer {
			continue
		}
		r := common.NewRect(common.Round(t.X), common.Round(t.Y), t.Width, t.Height)
		if r.Overlaps(box) {
			return e, true
		}
	}
	return 0, false
}

// FacingBlock returns the block in front of the hero, if any.
func (h *Hero) FacingBlock() *level.Block {
	for _, e := range h.ctx.Map.EntitiesOverlapping(h.layer, h.facingBox()) {
		if b, ok := e.(*level.Block); ok {
			return b
		}
	}
	return nil
}
