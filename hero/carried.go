package hero

import (
	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/ecs/component"
)

// CarriedItem is a liftable world entity while hero states hold it. The
// world keeps one reference on the entity and every holding state adds one.
type CarriedItem struct {
	world   *ecs.World
	entity  ecs.Entity
	name    string
	lift    common.Countdown
	lifting bool
	broken  bool
}

func newCarriedItem(h *Hero, e ecs.Entity) *CarriedItem {
	w := h.ctx.World
	item := &CarriedItem{world: w, entity: e, lifting: true}
	if l, ok := ecs.Get(w, e, component.LiftableComponent.Kind()); ok {
		item.name = l.Name
	}
	_ = ecs.Add(w, e, component.CarriedComponent.Kind(), &component.Carried{State: "lifting"})
	item.lift.Start(h.ctx.Clock.Now(), h.ctx.Tuning.LiftDuration)
	return item
}

func (c *CarriedItem) Entity() ecs.Entity { return c.entity }

func (c *CarriedItem) Name() string { return c.name }

// RefCount returns the holders of the entity, the world included.
func (c *CarriedItem) RefCount() int {
	return ecs.RefCount(c.world, c.entity)
}

// IsBeingLifted reports whether the lifting animation is still running.
func (c *CarriedItem) IsBeingLifted() bool { return c.lifting }

func (c *CarriedItem) IsBroken() bool { return c.broken }

// Break makes the item shatter in the hands of the hero.
func (c *CarriedItem) Break() { c.broken = true }

// update ends the lift and keeps the entity above the hero.
func (c *CarriedItem) update(h *Hero) {
	now := h.ctx.Clock.Now()
	if c.lifting && c.lift.Expired(now) {
		c.lifting = false
		if carried, ok := ecs.Get(c.world, c.entity, component.CarriedComponent.Kind()); ok {
			carried.State = "carrying"
		}
	}
	t, ok := ecs.Get(c.world, c.entity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	height := h.ctx.Tuning.CarryHeight
	if c.lifting && h.ctx.Tuning.LiftDuration > 0 {
		done := 1 - float64(c.lift.Remaining(now))/float64(h.ctx.Tuning.LiftDuration)
		height *= done
	}
	t.X = float64(h.box.X)
	t.Y = float64(h.box.Y)
	t.Z = height + float64(h.height)
	t.Layer = int(h.layer)
}

func (c *CarriedItem) throw(h *Hero, direction4 int) {
	w := c.world
	if !ecs.IsAlive(w, c.entity) {
		return
	}
	startZ := h.ctx.Tuning.CarryHeight
	if t, ok := ecs.Get(w, c.entity, component.TransformComponent.Kind()); ok {
		startZ = t.Z
	}
	ecs.Remove(w, c.entity, component.CarriedComponent.Kind())
	_ = ecs.Add(w, c.entity, component.ThrownComponent.Kind(), &component.Thrown{
		Direction4: direction4,
		Speed:      h.ctx.Tuning.ThrowSpeed,
		Distance:   h.ctx.Tuning.ThrowDistance,
		StartZ:     startZ,
	})
	h.ctx.Sounds.Play("throw")
	h.log.WithField("item", c.name).Debug("carried item thrown")
}

func (c *CarriedItem) destroy(h *Hero) {
	w := c.world
	if l, ok := ecs.Get(w, c.entity, component.LiftableComponent.Kind()); ok && l.DestructionSound != "" {
		h.ctx.Sounds.Play(l.DestructionSound)
	}
	ecs.DestroyEntity(w, c.entity)
	h.log.WithField("item", c.name).Debug("carried item destroyed")
}

// carriedRef is one state's reference on a carried item. The holding state
// settles it in Stop with the policy declared by the next state.
type carriedRef struct {
	item *CarriedItem
}

func acquireCarried(item *CarriedItem) carriedRef {
	if item == nil || !ecs.IsAlive(item.world, item.entity) {
		return carriedRef{}
	}
	ecs.Retain(item.world, item.entity)
	return carriedRef{item: item}
}

func (r *carriedRef) Item() *CarriedItem { return r.item }

// settle gives the item to the next state, throws it or destroys it.
func (r *carriedRef) settle(h *Hero, next State) {
	item := r.item
	if item == nil {
		return
	}
	r.item = nil
	if !ecs.IsAlive(item.world, item.entity) {
		h.ctx.Sprites.SetLiftedItem(nil)
		return
	}

	switch next.PreviousCarriedItemBehavior() {
	case CarriedKeep:
		// the world, this state and the next state
		if n := item.RefCount(); n != 3 {
			invariant(ErrCarriedRefCount, "%q kept by %s with refcount %d", item.name, next.Name(), n)
		}
		ecs.Release(item.world, item.entity)
	case CarriedDestroy:
		h.ctx.Sprites.SetLiftedItem(nil)
		ecs.Release(item.world, item.entity)
		item.destroy(h)
	default:
		h.ctx.Sprites.SetLiftedItem(nil)
		item.throw(h, h.Direction4())
		ecs.Release(item.world, item.entity)
	}
}

// drop releases the reference without touching the entity, for a state
// destroyed while still holding.
func (r *carriedRef) drop() {
	if r.item == nil {
		return
	}
	ecs.Release(r.item.world, r.item.entity)
	r.item = nil
}

// carriedItem returns the item held by the current state, if any.
func (h *Hero) carriedItem() *CarriedItem {
	if h.state == nil {
		return nil
	}
	return h.state.CarriedItem()
}
