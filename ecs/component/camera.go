package component

// Camera follows the player. Zoom scales the world pixels-per-unit.
type Camera struct {
	Zoom       float64
	Smoothness float64
	X          float64
	Y          float64
	Snapped    bool
}

var CameraComponent = NewComponent[Camera]()
