package component

type HeroTag struct{}

var HeroTagComponent = NewComponent[HeroTag]("hero")

// Carried marks an entity owned by a hero state rather than by the world's
// free-entity list.
type Carried struct {
	State string
}

var CarriedComponent = NewComponent[Carried]("carried")
