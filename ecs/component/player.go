package component

// Player counts what the player has done this session. It is shown in the
// debug overlay.
type Player struct {
	Jumps    int
	Stomps   int
	Respawns int
}

var PlayerComponent = NewComponent[Player]()
