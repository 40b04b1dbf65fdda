package component

import "github.com/jakecoffman/cp"

// ProjectileKind identifies the weapon a projectile comes from.
type ProjectileKind int

const (
	ProjectileArrow ProjectileKind = iota
	ProjectileBoomerang
	ProjectileHookshot
)

func (k ProjectileKind) String() string {
	switch k {
	case ProjectileArrow:
		return "arrow"
	case ProjectileBoomerang:
		return "boomerang"
	case ProjectileHookshot:
		return "hookshot"
	}
	return "unknown"
}

// Projectile is a weapon flying across the map. Boomerangs go back to the
// entity that threw them once MaxDistance is covered or a wall is hit.
type Projectile struct {
	Kind        ProjectileKind
	Velocity    cp.Vector // pixels per tick
	MaxDistance float64
	Traveled    float64
	Returning   bool
	Owner       uint64
}

var ProjectileComponent = NewComponent[Projectile]("projectile")
