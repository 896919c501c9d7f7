package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// RespawnSystem sends players that fell below the kill plane back to their
// last grounded position.
type RespawnSystem struct{}

func NewRespawnSystem() *RespawnSystem { return &RespawnSystem{} }

func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	killY, hasBounds := 0.0, false
	if be, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, be, component.LevelBoundsComponent.Kind()); ok {
			killY, hasBounds = b.KillY, true
		}
	}

	ecs.ForEach3(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), component.SafeRespawnComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, t *component.Transform, safe *component.SafeRespawn) {
		if !safe.Initialized {
			safe.X, safe.Y = t.X, t.Y
			safe.Initialized = true
		}
		if hasBounds && t.Y < killY {
			_ = ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
		}
	})

	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, _ *component.RespawnRequest) {
		defer ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind())
		if !ok || !safe.Initialized {
			return
		}

		t.X = safe.X
		t.Y = safe.Y
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
			body.Body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
			body.Body.SetVelocityVector(cp.Vector{})
			body.Body.SetAngularVelocity(0)
		}
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			p.Respawns++
		}
	})
}
