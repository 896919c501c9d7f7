package component

import "github.com/milk9111/platformer/behavior"

// Spawner periodically builds Template at the entity's position offset by
// OffsetX/OffsetY.
type Spawner struct {
	Template string
	Limit    int
	Interval float64
	OffsetX  float64
	OffsetY  float64

	Spawner *behavior.Spawner
}

var SpawnerComponent = NewComponent[Spawner]()
