package system

import (
	"fmt"
	"log"

	"github.com/milk9111/platformer/behavior"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

const (
	castHitLogInterval = 2.0

	// EventStomp is pushed every frame the player's down probe rests on a
	// target dummy. Data is a Stomp.
	EventStomp = "stomp"
)

type Stomp struct {
	Player ecs.Entity
	Dummy  ecs.Entity
}

// LocomotionSystem runs the per-frame half of the player controller: probes,
// timers and one-way traversal. It also records the last safe position and
// detects stomps.
type LocomotionSystem struct {
	world *physics.World
}

func NewLocomotionSystem(world *physics.World) *LocomotionSystem {
	return &LocomotionSystem{world: world}
}

func (ls *LocomotionSystem) Update(w *ecs.World) {
	if ls == nil || w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach3(w, component.LocomotionComponent.Kind(), component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion, in *component.Input, pb *component.PhysicsBody) {
		if pb.Body == nil {
			return
		}
		if loco.Controller == nil {
			if err := ls.attach(w, e, loco, pb); err != nil {
				log.Printf("locomotion: entity=%v: %v", e, err)
				return
			}
		}

		loco.Controller.Update(dt, pb.Body.Position(), behavior.Input{
			Horizontal:   in.Horizontal,
			JumpPressed:  in.JumpPressed,
			JumpReleased: in.JumpReleased,
			DropHeld:     in.DropHeld,
		})

		state := loco.Controller.State()
		if safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind()); ok && state.Grounded {
			safe.X = state.LastGrounded.X
			safe.Y = state.LastGrounded.Y
			safe.Initialized = true
		}

		hits := loco.Controller.LastHits()
		ls.detectStomp(w, e, hits.Down)

		if loco.CastHitLog && loco.CastLogDue(dt, castHitLogInterval) {
			log.Printf("locomotion: cast up=%s down=%s", describeHit(hits.Up), describeHit(hits.Down))
		}
	})
}

func (ls *LocomotionSystem) attach(w *ecs.World, e ecs.Entity, loco *component.Locomotion, pb *component.PhysicsBody) error {
	var group uint
	if c := pb.Collider(); c != nil {
		group = c.Group()
	}

	var anim behavior.AnimationSink = discardAnimation{}
	if a, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
		anim = a
	}

	ctrl, err := behavior.NewLocomotion(loco.Config, ls.world.Query(group), anim, cueRouter{w: w, e: e})
	if err != nil {
		return err
	}
	loco.Controller = ctrl
	loco.Body = physics.NewBody(pb.Body)
	return nil
}

// detectStomp reports the player's down probe resting on a target dummy.
func (ls *LocomotionSystem) detectStomp(w *ecs.World, player ecs.Entity, down behavior.Collider) {
	c, ok := down.(*physics.Collider)
	if !ok || c.Layer()&physics.LayerDummy == 0 {
		return
	}
	dummy, ok := OwnerOf(c)
	if !ok || !ecs.Has(w, dummy, component.TargetDummyComponent.Kind()) {
		return
	}
	w.Events().Push(ecs.Event{Type: EventStomp, Data: Stomp{Player: player, Dummy: dummy}})
}

func describeHit(c behavior.Collider) string {
	if c == nil {
		return "none"
	}
	return c.Tag()
}

// LocomotionPhysicsSystem applies movement and jumps once per fixed step.
type LocomotionPhysicsSystem struct{}

func NewLocomotionPhysicsSystem() *LocomotionPhysicsSystem {
	return &LocomotionPhysicsSystem{}
}

func (s *LocomotionPhysicsSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.LocomotionComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion) {
		if loco.Controller == nil || loco.Body == nil {
			return
		}
		if !loco.Controller.FixedUpdate(loco.Body) {
			return
		}
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			p.Jumps++
		}
	})
}

// SetCastShape switches the ground probe shape of every controller.
func SetCastShape(w *ecs.World, shape behavior.CastShape) error {
	if !shape.Valid() {
		return fmt.Errorf("locomotion: %w: cast shape %v", behavior.ErrInvalidConfig, shape)
	}
	var firstErr error
	ecs.ForEach(w, component.LocomotionComponent.Kind(), func(_ ecs.Entity, loco *component.Locomotion) {
		loco.Config.Cast = shape
		if loco.Controller == nil {
			return
		}
		if err := loco.Controller.SetCastShape(shape); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	return firstErr
}
