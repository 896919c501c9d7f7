package system

import (
	"fmt"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

var (
	bankOnce sync.Once
	bank     *assets.SoundBank
	bankErr  error
)

func soundBank() (*assets.SoundBank, error) {
	bankOnce.Do(func() {
		bank, bankErr = assets.LoadSoundBank()
	})
	return bank, bankErr
}

// CueLoader builds a player for a named one-shot cue.
type CueLoader func(name string) (*audio.Player, error)

// AudioSystem plays and stops the cues flagged on Audio components. Players
// are built on first use.
type AudioSystem struct {
	load   CueLoader
	failed map[string]bool
}

// NewAudioSystem uses load to build cue players; a nil load reads cues from
// the sound bank.
func NewAudioSystem(load CueLoader) *AudioSystem {
	if load == nil {
		load = loadBankCue
	}
	return &AudioSystem{load: load, failed: map[string]bool{}}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Players), len(audioComp.Names), len(audioComp.Volume))

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false

			player := a.player(audioComp, i)
			if player == nil {
				continue
			}
			player.SetVolume(audioComp.Volume[i])
			player.Rewind()
			player.Play()
		}

		for i := 0; i < min(count, len(audioComp.Stop)); i++ {
			if !audioComp.Stop[i] {
				continue
			}
			audioComp.Stop[i] = false

			player := audioComp.Players[i]
			if player != nil && player.IsPlaying() {
				player.Pause()
			}
		}
	})
}

func (a *AudioSystem) player(audioComp *component.Audio, i int) *audio.Player {
	if audioComp.Players[i] != nil {
		return audioComp.Players[i]
	}
	name := audioComp.Names[i]
	if a.failed[name] {
		return nil
	}
	player, err := a.load(name)
	if err != nil {
		log.Printf("audio: load %q: %v", name, err)
		a.failed[name] = true
		return nil
	}
	audioComp.Players[i] = player
	return player
}

func loadBankCue(name string) (*audio.Player, error) {
	bank, err := soundBank()
	if err != nil {
		return nil, err
	}
	tone, ok := bank.Cues[name]
	if !ok {
		return nil, fmt.Errorf("unknown cue %q", name)
	}
	return assets.NewCuePlayer(name, tone)
}
