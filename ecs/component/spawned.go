package component

import "github.com/milk9111/platformer/behavior"

// Spawned links an entity to the spawner that created it. Handle.Destroyed
// must be called when the entity goes away.
type Spawned struct {
	Handle *behavior.SpawnHandle
}

var SpawnedComponent = NewComponent[Spawned]()
