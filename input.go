package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hero/hero"
)

var commands = []hero.Command{
	hero.CommandAction,
	hero.CommandAttack,
	hero.CommandItem1,
	hero.CommandItem2,
	hero.CommandPause,
	hero.CommandRight,
	hero.CommandUp,
	hero.CommandLeft,
	hero.CommandDown,
}

var keyBindings = map[hero.Command][]ebiten.Key{
	hero.CommandAction: {ebiten.KeySpace},
	hero.CommandAttack: {ebiten.KeyC, ebiten.KeyJ},
	hero.CommandItem1:  {ebiten.KeyX, ebiten.KeyK},
	hero.CommandItem2:  {ebiten.KeyV, ebiten.KeyL},
	hero.CommandPause:  {ebiten.KeyEscape, ebiten.KeyP},
	hero.CommandRight:  {ebiten.KeyArrowRight, ebiten.KeyD},
	hero.CommandUp:     {ebiten.KeyArrowUp, ebiten.KeyW},
	hero.CommandLeft:   {ebiten.KeyArrowLeft, ebiten.KeyA},
	hero.CommandDown:   {ebiten.KeyArrowDown, ebiten.KeyS},
}

var padBindings = map[hero.Command]ebiten.StandardGamepadButton{
	hero.CommandAction: ebiten.StandardGamepadButtonRightBottom,
	hero.CommandAttack: ebiten.StandardGamepadButtonRightLeft,
	hero.CommandItem1:  ebiten.StandardGamepadButtonRightRight,
	hero.CommandItem2:  ebiten.StandardGamepadButtonRightTop,
	hero.CommandPause:  ebiten.StandardGamepadButtonCenterRight,
	hero.CommandRight:  ebiten.StandardGamepadButtonLeftRight,
	hero.CommandUp:     ebiten.StandardGamepadButtonLeftTop,
	hero.CommandLeft:   ebiten.StandardGamepadButtonLeftLeft,
	hero.CommandDown:   ebiten.StandardGamepadButtonLeftBottom,
}

const stickDeadzone = 0.4

// commandSink receives command edges. *hero.Hero implements it.
type commandSink interface {
	NotifyCommandPressed(c hero.Command)
	NotifyCommandReleased(c hero.Command)
}

// Input turns the keyboard and the first gamepad into hero command edges.
type Input struct {
	held map[hero.Command]bool
}

func NewInput() *Input {
	return &Input{held: make(map[hero.Command]bool)}
}

func (i *Input) Update(sink commandSink) {
	i.apply(poll(), sink)
}

// apply notifies releases before presses, so turning from one arrow to
// another never leaves both held.
func (i *Input) apply(now map[hero.Command]bool, sink commandSink) {
	for _, c := range commands {
		if i.held[c] && !now[c] {
			i.held[c] = false
			sink.NotifyCommandReleased(c)
		}
	}
	for _, c := range commands {
		if now[c] && !i.held[c] {
			i.held[c] = true
			sink.NotifyCommandPressed(c)
		}
	}
}

func poll() map[hero.Command]bool {
	now := make(map[hero.Command]bool, len(commands))
	for c, keys := range keyBindings {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				now[c] = true
			}
		}
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			for c, b := range padBindings {
				if ebiten.IsStandardGamepadButtonPressed(id, b) {
					now[c] = true
				}
			}
			x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
			y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
			if math.Hypot(x, y) > stickDeadzone {
				now[hero.CommandRight] = now[hero.CommandRight] || x > stickDeadzone
				now[hero.CommandLeft] = now[hero.CommandLeft] || x < -stickDeadzone
				now[hero.CommandDown] = now[hero.CommandDown] || y > stickDeadzone
				now[hero.CommandUp] = now[hero.CommandUp] || y < -stickDeadzone
			}
		}
	}
	return now
}
