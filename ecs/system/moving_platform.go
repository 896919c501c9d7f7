package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/behavior"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

// MovingPlatformSystem attaches slider or hinge joints to kinematic platforms
// and flips their motors at the limits.
type MovingPlatformSystem struct {
	world *physics.World
}

func NewMovingPlatformSystem(world *physics.World) *MovingPlatformSystem {
	return &MovingPlatformSystem{world: world}
}

func (s *MovingPlatformSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.MovingPlatformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, mp *component.MovingPlatform, pb *component.PhysicsBody) {
		if pb.Body == nil {
			return
		}
		if mp.Driver == nil {
			if err := s.attach(mp, pb); err != nil {
				log.Printf("moving platform: entity=%v: %v", e, err)
				// Do not retry every frame.
				_ = ecs.Remove(w, e, component.MovingPlatformComponent.Kind())
				return
			}
		}
		mp.Driver.Update()
	})
}

func (s *MovingPlatformSystem) attach(mp *component.MovingPlatform, pb *component.PhysicsBody) error {
	var joint behavior.Joint
	switch mp.Kind {
	case behavior.JointSlider:
		slider, err := s.world.AddSlider(pb.Body, physics.SliderDef{
			Axis:       cp.Vector{X: mp.Axis[0], Y: mp.Axis[1]},
			Lower:      mp.Lower,
			Upper:      mp.Upper,
			MotorSpeed: mp.PositiveSpeed,
		})
		if err != nil {
			return err
		}
		joint = slider
	case behavior.JointHinge:
		hinge, err := s.world.AddHinge(pb.Body, physics.HingeDef{
			Lower:      mp.Lower,
			Upper:      mp.Upper,
			MotorSpeed: mp.PositiveSpeed,
		})
		if err != nil {
			return err
		}
		joint = hinge
	}

	driver, err := behavior.NewMotorDriver(mp.Kind, joint, mp.PositiveSpeed, mp.NegativeSpeed)
	if err != nil {
		return err
	}
	mp.Joint = joint
	mp.Driver = driver
	return nil
}
