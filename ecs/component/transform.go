package component

// Transform is a world-space position. Y is height above the course.
type Transform struct {
	X float64
	Y float64
	Z float64
}

var TransformComponent = NewComponent[Transform]("transform")
