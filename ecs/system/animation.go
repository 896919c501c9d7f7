package system

import (
	"github.com/milk9111/platformer/behavior"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// Animator states resolved from the locomotion parameters.
const (
	AnimStateIdle   = "idle"
	AnimStateRun    = "run"
	AnimStateJump   = "jump"
	AnimStateFall   = "fall"
	AnimStateCrouch = "crouch"
)

// AnimationSystem turns animator parameters into a display state and tracks
// how long that state has been shown.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	dt := w.DeltaTime()
	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(_ ecs.Entity, anim *component.Animator) {
		next := resolveAnimState(anim)
		if next != anim.State {
			anim.State = next
			anim.StateTime = 0
			return
		}
		anim.StateTime += dt
	})
}

func resolveAnimState(anim *component.Animator) string {
	switch {
	case anim.Bools[behavior.AnimJump] && anim.Floats[behavior.AnimYVelocity] > 0:
		return AnimStateJump
	case anim.Bools[behavior.AnimJump]:
		return AnimStateFall
	case anim.Bools[behavior.AnimCrouch]:
		return AnimStateCrouch
	case anim.Floats[behavior.AnimXVelocity] > 0:
		return AnimStateRun
	}
	return AnimStateIdle
}
