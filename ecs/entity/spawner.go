package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/behavior"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// Spawner builds prefabs into a world on behalf of behavior.Spawner.
type Spawner struct {
	world *ecs.World
}

var _ behavior.EntitySpawner = (*Spawner)(nil)

func NewSpawner(w *ecs.World) *Spawner {
	return &Spawner{world: w}
}

// Spawn builds template at at and links the new entity to handle.
func (s *Spawner) Spawn(template string, at cp.Vector, handle *behavior.SpawnHandle) error {
	e, err := BuildEntity(s.world, template)
	if err != nil {
		return err
	}
	if err := SetEntityTransform(s.world, e, at.X, at.Y, 0); err != nil {
		ecs.DestroyEntity(s.world, e)
		return fmt.Errorf("spawn %q: set transform: %w", template, err)
	}
	if err := ecs.Add(s.world, e, component.SpawnedComponent.Kind(), &component.Spawned{Handle: handle}); err != nil {
		ecs.DestroyEntity(s.world, e)
		return fmt.Errorf("spawn %q: link handle: %w", template, err)
	}
	return nil
}
