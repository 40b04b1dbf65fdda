package component

// Liftable is an object the hero can lift, carry and throw, such as a pot.
type Liftable struct {
	Name             string
	Weight           int
	Damage           int
	DestructionSound string
}

var LiftableComponent = NewComponent[Liftable]("liftable")

// Thrown is a carried object flying after being thrown. It lands after
// Distance pixels and breaks.
type Thrown struct {
	Direction4 int
	Speed      float64 // pixels per tick
	Distance   float64
	Traveled   float64
	StartZ     float64
}

var ThrownComponent = NewComponent[Thrown]("thrown")

// Broken is an object shattering; it disappears when its TTL runs out.
type Broken struct{}

var BrokenComponent = NewComponent[Broken]("broken")
