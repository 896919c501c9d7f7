package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const spawnCue = "Spawn"

// SpawnerSystem ticks every spawner at its transform plus offset.
type SpawnerSystem struct{}

func NewSpawnerSystem() *SpawnerSystem {
	return &SpawnerSystem{}
}

func (s *SpawnerSystem) Update(w *ecs.World) {
	dt := w.DeltaTime()
	// Spawning adds entities; iterate over a snapshot of spawners.
	for _, e := range w.Query(component.SpawnerComponent.Kind(), component.TransformComponent.Kind()) {
		sp, ok := ecs.Get(w, e, component.SpawnerComponent.Kind())
		if !ok || sp.Spawner == nil {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		at := cp.Vector{X: t.X + sp.OffsetX, Y: t.Y + sp.OffsetY}
		before := sp.Spawner.Spawned()
		if err := sp.Spawner.Update(dt, at); err != nil {
			log.Printf("spawner: entity=%v: %v", e, err)
			continue
		}
		if sp.Spawner.Spawned() > before {
			cueRouter{w: w, e: e}.PlaySound(spawnCue, at)
		}
	}
}
