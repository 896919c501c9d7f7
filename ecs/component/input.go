package component

// Input stores per-frame input state for an entity. Pressed and released
// fields are edges for the current frame only.
type Input struct {
	Horizontal   float64
	JumpPressed  bool
	JumpReleased bool
	JumpHeld     bool
	DropHeld     bool
	MutePressed  bool
}

var InputComponent = NewComponent[Input]()
