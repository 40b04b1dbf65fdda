package hero

// Commands is the set of game commands currently held down.
type Commands struct {
	pressed [commandCount]bool
}

func (c *Commands) press(cmd Command) bool {
	if cmd < 0 || cmd >= commandCount || c.pressed[cmd] {
		return false
	}
	c.pressed[cmd] = true
	return true
}

func (c *Commands) release(cmd Command) bool {
	if cmd < 0 || cmd >= commandCount || !c.pressed[cmd] {
		return false
	}
	c.pressed[cmd] = false
	return true
}

// IsPressed reports whether a command is held down.
func (c *Commands) IsPressed(cmd Command) bool {
	return cmd >= 0 && cmd < commandCount && c.pressed[cmd]
}

// wantedDirections maps (dx+1, dy+1) of the arrows to a direction8. Y grows
// downwards.
var wantedDirections = [3][3]int{
	{3, 4, 5},
	{2, -1, 6},
	{1, 0, 7},
}

// WantedDirection8 combines the arrows into a direction8, or -1 when no
// arrow is held or opposite arrows cancel out.
func (c *Commands) WantedDirection8() int {
	dx, dy := 0, 0
	if c.pressed[CommandRight] {
		dx++
	}
	if c.pressed[CommandLeft] {
		dx--
	}
	if c.pressed[CommandDown] {
		dy++
	}
	if c.pressed[CommandUp] {
		dy--
	}
	return wantedDirections[dx+1][dy+1]
}

// CommandsEffects describes what the action and attack commands currently
// do, as shown by the HUD.
type CommandsEffects struct {
	Action       ActionEffect
	Sword        SwordEffect
	PauseAllowed bool
}

func defaultEffects() CommandsEffects {
	return CommandsEffects{Action: ActionNone, Sword: SwordSwing, PauseAllowed: true}
}
