package system

import (
	"log"

	"github.com/milk9111/platformer/behavior"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// PlatformResetSystem restores one-way platforms the player has passed
// through.
type PlatformResetSystem struct{}

func NewPlatformResetSystem() *PlatformResetSystem {
	return &PlatformResetSystem{}
}

func (s *PlatformResetSystem) Update(w *ecs.World) {
	dt := w.DeltaTime()
	ecs.ForEach2(w, component.PlatformEffectorComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, eff *component.PlatformEffector, pb *component.PhysicsBody) {
		if eff.Reset == nil {
			c := pb.Collider()
			if c == nil {
				return
			}
			reset, err := behavior.NewPlatformReset(c, eff.Delay)
			if err != nil {
				log.Printf("platform reset: entity=%v: %v", e, err)
				return
			}
			eff.Reset = reset
		}
		eff.Reset.Update(dt)
	})
}
