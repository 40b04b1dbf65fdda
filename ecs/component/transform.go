package component

// Transform is the map position of an entity. X and Y are the top-left
// corner in pixels; Z is the display elevation above the ground.
type Transform struct {
	X      float64
	Y      float64
	Z      float64
	Width  int
	Height int
	Layer  int
}

var TransformComponent = NewComponent[Transform]("transform")
