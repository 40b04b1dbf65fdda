package hero

import (
	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/level"
)

// Map is the collision oracle the hero consults. *level.Map implements it.
type Map interface {
	GroundAt(layer level.Layer, x, y int) level.Ground
	HasEmptyGround(layer level.Layer, box common.Rect) bool
	CollidesWithObstacles(layer level.Layer, box common.Rect, subject level.ObstacleSubject) bool
	EntitiesOverlapping(layer level.Layer, box common.Rect) []level.Entity
}

// Sprites receives animation commands from states. Directions are
// direction4 values.
type Sprites interface {
	SetAnimation(name string)
	Animation() string
	HasAnimation(name string) bool
	IsAnimationFinished() bool
	Direction() int
	SetDirection(direction4 int)
	SetLiftedItem(item *CarriedItem)
	SetBlinking(blinking bool)
	SetSuspended(suspended bool)
}

// Sounds plays sound effects by id.
type Sounds interface {
	Play(id string)
}

// Equipment is the hero's inventory: abilities, life and assigned items.
type Equipment interface {
	HasAbility(a Ability) bool
	NotifyAbilityUsed(a Ability)
	ItemAssigned(slot int) Item
	Life() int
	RemoveLife(amount int)
	AddItem(name string, variant int)
}

// Item is an equipment item that can be used from an item command.
type Item interface {
	Name() string
	IsAssignable() bool
	// OnUsing starts a usage session. The item calls usage.Finish when done,
	// possibly during a later update.
	OnUsing(usage *ItemUsage)
}
