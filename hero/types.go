package hero

import (
	"fmt"
	"strings"
)

// Command is a game command the player (or a script) can press.
type Command int

const (
	CommandAction Command = iota
	CommandAttack
	CommandItem1
	CommandItem2
	CommandPause
	CommandRight
	CommandUp
	CommandLeft
	CommandDown

	commandCount
)

var commandNames = [...]string{
	CommandAction: "action",
	CommandAttack: "attack",
	CommandItem1:  "item_1",
	CommandItem2:  "item_2",
	CommandPause:  "pause",
	CommandRight:  "right",
	CommandUp:     "up",
	CommandLeft:   "left",
	CommandDown:   "down",
}

func (c Command) String() string {
	if c < 0 || c >= commandCount {
		return fmt.Sprintf("command(%d)", int(c))
	}
	return commandNames[c]
}

// ParseCommand converts a command name as used by scripts.
func ParseCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range commandNames {
		if n == name {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// IsDirection reports whether the command is one of the four arrows.
func (c Command) IsDirection() bool {
	return c >= CommandRight && c <= CommandDown
}

// Direction4 returns the direction of an arrow command, or -1.
func (c Command) Direction4() int {
	if !c.IsDirection() {
		return -1
	}
	return int(c - CommandRight)
}

// ActionEffect is what pressing the action command currently does.
type ActionEffect int

const (
	ActionNone ActionEffect = iota
	ActionLift
	ActionThrow
	ActionGrab
	ActionSwim
)

func (e ActionEffect) String() string {
	switch e {
	case ActionLift:
		return "lift"
	case ActionThrow:
		return "throw"
	case ActionGrab:
		return "grab"
	case ActionSwim:
		return "swim"
	}
	return "none"
}

// SwordEffect is what pressing the attack command currently does.
type SwordEffect int

const (
	SwordNone SwordEffect = iota
	SwordSwing
)

// CarriedBehavior is what happens to an item carried by the previous state
// when a state starts.
type CarriedBehavior int

const (
	CarriedThrow CarriedBehavior = iota
	CarriedKeep
	CarriedDestroy
)

func (b CarriedBehavior) String() string {
	switch b {
	case CarriedKeep:
		return "keep"
	case CarriedDestroy:
		return "destroy"
	}
	return "throw"
}

// Ability is an equipment ability that unlocks hero actions.
type Ability string

const (
	AbilitySwim  Ability = "swim"
	AbilityLift  Ability = "lift"
	AbilitySword Ability = "sword"
	AbilityRun   Ability = "run"
	AbilityGrab  Ability = "grab"
	AbilityPush  Ability = "push"
	AbilityPull  Ability = "pull"
)

// EnemyReaction is how an enemy reacted to an attack.
type EnemyReaction int

const (
	ReactionIgnored EnemyReaction = iota
	ReactionHurt
	ReactionProtected
	ReactionImmobilized
)

func (r EnemyReaction) String() string {
	switch r {
	case ReactionHurt:
		return "hurt"
	case ReactionProtected:
		return "protected"
	case ReactionImmobilized:
		return "immobilized"
	}
	return "ignored"
}
