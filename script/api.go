package script

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/hero/hero"
	"github.com/sirupsen/logrus"
)

// maxFlushDepth bounds scripts that request a transition from the state
// change they observe.
const maxFlushDepth = 8

// binding exposes a hero to scripts. Calls that change the hero are queued
// while a script runs and applied once it returns, since a transition
// notifies observers that may run scripts again.
type binding struct {
	hero    *hero.Hero
	log     *logrus.Entry
	pending []func() error
	depth   int
	api     *tengo.ImmutableMap
}

func newBinding(h *hero.Hero, log *logrus.Entry) *binding {
	b := &binding{hero: h, log: log}
	b.api = b.build()
	return b
}

func (b *binding) later(fn func() error) {
	b.pending = append(b.pending, fn)
}

func (b *binding) flush() error {
	if len(b.pending) == 0 {
		return nil
	}
	if b.depth >= maxFlushDepth {
		b.log.WithField("dropped", len(b.pending)).Warn("script transitions nested too deep")
		b.pending = nil
		return nil
	}
	b.depth++
	defer func() { b.depth-- }()

	calls := b.pending
	b.pending = nil
	var errs []error
	for _, fn := range calls {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *binding) predicate(name string, fn func(s hero.State) bool) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(fn(b.hero.State())), nil
	}}
}

func (b *binding) command(name string, fn func(c hero.Command)) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		c, err := hero.ParseCommand(objectAsString(args[0]))
		if err != nil {
			b.log.WithError(err).Warn("script sent an unknown command")
			return tengo.FalseValue, nil
		}
		b.later(func() error {
			fn(c)
			return nil
		})
		return tengo.TrueValue, nil
	}}
}

func (b *binding) build() *tengo.ImmutableMap {
	h := b.hero
	known := make(map[string]bool)
	for _, name := range hero.StateNames() {
		known[name] = true
	}

	values := map[string]tengo.Object{}

	values["get_state_name"] = &tengo.UserFunction{Name: "get_state_name", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return stringObject(h.StateName()), nil
	}}

	values["set_state"] = &tengo.UserFunction{Name: "set_state", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := objectAsString(args[0])
		if !known[name] {
			b.log.WithField("state", name).Warn("script requested an unknown state")
			return tengo.FalseValue, nil
		}
		b.later(func() error { return h.SetStateByName(name) })
		return tengo.TrueValue, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y := h.Position()
		return pairObject(x, y), nil
	}}

	values["get_direction"] = &tengo.UserFunction{Name: "get_direction", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return intObject(h.Direction4()), nil
	}}

	values["get_layer"] = &tengo.UserFunction{Name: "get_layer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return stringObject(h.Layer().String()), nil
	}}

	values["get_ground"] = &tengo.UserFunction{Name: "get_ground", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return stringObject(h.Ground().String()), nil
	}}

	values["get_life"] = &tengo.UserFunction{Name: "get_life", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return intObject(h.Context().Equipment.Life()), nil
	}}

	values["is_suspended"] = &tengo.UserFunction{Name: "is_suspended", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(h.IsSuspended()), nil
	}}

	values["is_invincible"] = &tengo.UserFunction{Name: "is_invincible", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(h.IsInvincible()), nil
	}}

	values["get_wanted_direction8"] = &tengo.UserFunction{Name: "get_wanted_direction8", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return intObject(h.State().WantedMovementDirection8()), nil
	}}

	values["is_touching_ground"] = b.predicate("is_touching_ground", hero.State.IsTouchingGround)
	values["can_control_movement"] = b.predicate("can_control_movement", hero.State.CanControlMovement)
	values["can_start_sword"] = b.predicate("can_start_sword", hero.State.CanStartSword)
	values["can_take_stairs"] = b.predicate("can_take_stairs", hero.State.CanTakeStairs)
	values["can_take_jumper"] = b.predicate("can_take_jumper", hero.State.CanTakeJumper)
	values["is_hero_visible"] = b.predicate("is_hero_visible", hero.State.IsHeroVisible)
	values["are_collisions_ignored"] = b.predicate("are_collisions_ignored", hero.State.AreCollisionsIgnored)
	values["is_cutting_with_sword"] = b.predicate("is_cutting_with_sword", hero.State.IsCuttingWithSword)
	values["is_grabbing_or_pulling"] = b.predicate("is_grabbing_or_pulling", hero.State.IsGrabbingOrPulling)
	values["is_using_item"] = b.predicate("is_using_item", hero.State.IsUsingItem)
	values["can_be_hurt"] = b.predicate("can_be_hurt", func(s hero.State) bool { return s.CanBeHurt(nil) })
	values["is_carrying"] = b.predicate("is_carrying", func(s hero.State) bool { return s.CarriedItem() != nil })

	values["can_avoid_deep_water"] = b.predicate("can_avoid_deep_water", hero.State.CanAvoidDeepWater)
	values["can_avoid_hole"] = b.predicate("can_avoid_hole", hero.State.CanAvoidHole)
	values["can_avoid_ice"] = b.predicate("can_avoid_ice", hero.State.CanAvoidIce)
	values["can_avoid_lava"] = b.predicate("can_avoid_lava", hero.State.CanAvoidLava)
	values["can_avoid_prickle"] = b.predicate("can_avoid_prickle", hero.State.CanAvoidPrickle)
	values["can_avoid_teletransporter"] = b.predicate("can_avoid_teletransporter", hero.State.CanAvoidTeletransporter)
	values["can_avoid_sensor"] = b.predicate("can_avoid_sensor", hero.State.CanAvoidSensor)
	values["can_avoid_switch"] = b.predicate("can_avoid_switch", hero.State.CanAvoidSwitch)
	values["can_avoid_explosion"] = b.predicate("can_avoid_explosion", hero.State.CanAvoidExplosion)
	values["can_avoid_stream"] = b.predicate("can_avoid_stream", func(s hero.State) bool { return s.CanAvoidStream(nil) })

	values["can_pick_treasure"] = &tengo.UserFunction{Name: "can_pick_treasure", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolObject(h.State().CanPickTreasure(objectAsString(args[0]))), nil
	}}

	values["simulate_command_pressed"] = b.command("simulate_command_pressed", h.SimulateCommandPressed)
	values["simulate_command_released"] = b.command("simulate_command_released", h.SimulateCommandReleased)

	values["play_sound"] = &tengo.UserFunction{Name: "play_sound", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		h.Context().Sounds.Play(objectAsString(args[0]))
		return tengo.TrueValue, nil
	}}

	values["freeze"] = &tengo.UserFunction{Name: "freeze", Value: func(args ...tengo.Object) (tengo.Object, error) {
		b.later(func() error {
			h.Freeze()
			return nil
		})
		return tengo.TrueValue, nil
	}}

	values["unfreeze"] = &tengo.UserFunction{Name: "unfreeze", Value: func(args ...tengo.Object) (tengo.Object, error) {
		b.later(func() error {
			h.Unfreeze()
			return nil
		})
		return tengo.TrueValue, nil
	}}

	values["start_jumping"] = &tengo.UserFunction{Name: "start_jumping", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		direction8 := objectAsInt(args[0], -1)
		distance := objectAsInt(args[1], 0)
		if direction8 < 0 || direction8 > 7 || distance <= 0 {
			return tengo.FalseValue, nil
		}
		b.later(func() error {
			h.StartJumping(direction8, distance, false, true)
			return nil
		})
		return tengo.TrueValue, nil
	}}

	values["start_forced_walking"] = &tengo.UserFunction{Name: "start_forced_walking", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		path := objectAsString(args[0])
		loop := len(args) > 1 && !args[1].IsFalsy()
		ignore := len(args) > 2 && !args[2].IsFalsy()
		b.later(func() error {
			if err := h.StartForcedWalking(path, loop, ignore); err != nil {
				return fmt.Errorf("script: start_forced_walking: %w", err)
			}
			return nil
		})
		return tengo.TrueValue, nil
	}}

	values["start_treasure"] = &tengo.UserFunction{Name: "start_treasure", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		item := objectAsString(args[0])
		variant := 1
		if len(args) > 1 {
			variant = objectAsInt(args[1], 1)
		}
		if !h.State().CanPickTreasure(item) {
			return tengo.FalseValue, nil
		}
		b.later(func() error {
			if !h.PickTreasure(item, variant) {
				b.log.WithField("item", item).Debug("treasure refused")
			}
			return nil
		})
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
