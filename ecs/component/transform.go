package component

// Transform is a position in world units (y up) and a rotation in radians.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
