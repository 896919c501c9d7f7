package component

import "github.com/milk9111/platformer/behavior"

// MovingPlatform is a kinematic platform on a slider or hinge joint whose
// motor flips between PositiveSpeed and NegativeSpeed at the joint limits.
type MovingPlatform struct {
	Kind          behavior.JointKind
	Axis          [2]float64
	Lower         float64
	Upper         float64
	PositiveSpeed float64
	NegativeSpeed float64

	Joint  behavior.Joint
	Driver *behavior.MotorDriver
}

var MovingPlatformComponent = NewComponent[MovingPlatform]()
