package component

import "github.com/milk9111/platformer/behavior"

// PlatformEffector marks a one-way platform whose collider is restored Delay
// seconds after the player passes through it.
type PlatformEffector struct {
	Delay float64
	Reset *behavior.PlatformReset
}

var PlatformEffectorComponent = NewComponent[PlatformEffector]()
