package component

import "github.com/milk9111/platformer/behavior"

// Locomotion attaches the movement controller to the player. Controller is
// built from Config once the physics body exists. CastHitLog turns on the
// periodic probe log.
type Locomotion struct {
	Config     behavior.LocomotionConfig
	Controller *behavior.Locomotion
	Body       behavior.Body

	CastHitLog   bool
	castLogTimer float64
}

var LocomotionComponent = NewComponent[Locomotion]()

// CastLogDue advances the log timer and reports whether interval has elapsed.
func (l *Locomotion) CastLogDue(dt, interval float64) bool {
	l.castLogTimer += dt
	if l.castLogTimer < interval {
		return false
	}
	l.castLogTimer = 0
	return true
}
