package hero

import (
	"fmt"
	"sort"
)

// stateFactories builds the states a script may request by name, the ones
// that need no map entity or item to start.
var stateFactories = map[string]func(h *Hero) State{
	"free":           func(h *Hero) State { return NewFreeState(h) },
	"frozen":         func(h *Hero) State { return NewFreezedState(h) },
	"sword swinging": func(h *Hero) State { return NewSwordSwingingState(h) },
	"running":        func(h *Hero) State { return NewRunningState(h, CommandAction) },
	"hookshot":       func(h *Hero) State { return NewHookshotState(h) },
	"bow":            func(h *Hero) State { return NewBowState(h) },
	"falling":        func(h *Hero) State { return NewFallingState(h) },
	"plunging":       func(h *Hero) State { return NewPlungingState(h) },
	"swimming":       func(h *Hero) State { return NewSwimmingState(h) },
	"wading":         func(h *Hero) State { return NewWadingState(h) },
	"hurt":           func(h *Hero) State { return NewHurtState(h, nil) },
	"boomerang": func(h *Hero) State {
		return NewBoomerangState(h, h.ctx.Tuning.BoomerangDistance, h.ctx.Tuning.BoomerangSpeed)
	},
	"back to solid ground": func(h *Hero) State {
		return NewBackToSolidGroundState(h, true, h.ctx.Tuning.BackToSolidGroundDelay, false)
	},
}

// StateNames lists the names accepted by SetStateByName.
func StateNames() []string {
	names := make([]string, 0, len(stateFactories))
	for name := range stateFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetStateByName starts a fresh state of the named kind.
func (h *Hero) SetStateByName(name string) error {
	build, ok := stateFactories[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
	h.SetState(build(h))
	return nil
}
