package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds the one-shot cues of an entity. Play and Stop are requests
// consumed by the audio system.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

var AudioComponent = NewComponent[Audio]()

// Index returns the slot of the cue called name, or -1.
func (a *Audio) Index(name string) int {
	if a == nil {
		return -1
	}
	for i, n := range a.Names {
		if n == name {
			return i
		}
	}
	return -1
}
