package component

// LevelBounds stores the world-space extent of the current level. Anything
// falling below KillY is respawned or destroyed.
type LevelBounds struct {
	MinX  float64
	MaxX  float64
	MinY  float64
	MaxY  float64
	KillY float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
