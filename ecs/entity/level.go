package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
)

// LoadScene places every prefab of lvl into the world and records its
// bounds. A level that names a music track queues it.
func LoadScene(w *ecs.World, lvl *levels.Level) ([]ecs.Entity, error) {
	if w == nil || lvl == nil {
		return nil, fmt.Errorf("load scene: world and level are required")
	}

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		MinX:  lvl.Bounds.MinX,
		MaxX:  lvl.Bounds.MaxX,
		MinY:  lvl.Bounds.MinY,
		MaxY:  lvl.Bounds.MaxY,
		KillY: lvl.Bounds.KillY,
	}); err != nil {
		return nil, fmt.Errorf("load scene %q: bounds: %w", lvl.Name, err)
	}

	placed := make([]ecs.Entity, 0, len(lvl.Entities))
	for i, p := range lvl.Entities {
		e, err := BuildEntityWithOverrides(w, p.Prefab, p.Components)
		if err != nil {
			return placed, fmt.Errorf("load scene %q: entity %d: %w", lvl.Name, i, err)
		}
		if ecs.Has(w, e, component.TransformComponent.Kind()) {
			if err := SetEntityTransform(w, e, p.X, p.Y, p.Rotation); err != nil {
				return placed, fmt.Errorf("load scene %q: entity %d: %w", lvl.Name, i, err)
			}
		}
		placed = append(placed, e)
	}

	if lvl.Music != "" && !musicRequested(w) {
		if err := requestMusic(w, lvl.Music); err != nil {
			return placed, fmt.Errorf("load scene %q: music: %w", lvl.Name, err)
		}
	}
	return placed, nil
}

func musicRequested(w *ecs.World) bool {
	_, ok := ecs.First(w, component.MusicRequestComponent.Kind())
	return ok
}
