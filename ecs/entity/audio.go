package entity

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// buildAudioComponent lays out the cue slots. Players stay nil until the
// audio system first plays them.
func buildAudioComponent(clips []prefabs.AudioClipSpec) *component.Audio {
	n := len(clips)
	comp := &component.Audio{
		Names:   make([]string, 0, n),
		Players: make([]*audio.Player, n),
		Volume:  make([]float64, 0, n),
		Play:    make([]bool, n),
		Stop:    make([]bool, n),
	}
	for _, clip := range clips {
		vol := clip.Volume
		if vol <= 0 {
			vol = 1
		}
		comp.Names = append(comp.Names, clip.Name)
		comp.Volume = append(comp.Volume, vol)
	}
	return comp
}
