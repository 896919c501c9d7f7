package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

func NewMusicPlayer(w *ecs.World) (ecs.Entity, error) {
	ent, err := BuildEntity(w, "music_player.yaml")
	if err != nil {
		return 0, fmt.Errorf("music player: %w", err)
	}
	return ent, nil
}

func addMusicPlayerFromSpec(w *ecs.World, e ecs.Entity, spec prefabs.MusicPlayerComponentSpec) error {
	volumes := make(map[string]float64, len(spec.Tracks))
	for _, t := range spec.Tracks {
		if t.Name == "" {
			return fmt.Errorf("music player: track without a name")
		}
		vol := t.Volume
		if vol <= 0 {
			vol = 1
		}
		volumes[t.Name] = vol
	}
	if err := ecs.Add(w, e, component.MusicPlayerComponent.Kind(), &component.MusicPlayer{
		Players:      map[string]*audio.Player{},
		TrackVolumes: volumes,
	}); err != nil {
		return err
	}
	if spec.Autoplay == "" {
		return nil
	}
	if _, ok := volumes[spec.Autoplay]; !ok {
		return fmt.Errorf("music player: autoplay track %q is not listed", spec.Autoplay)
	}
	return requestMusic(w, spec.Autoplay)
}

// CloneMusicPlayerState copies playback state so it can survive a level
// reload without restarting the track.
func CloneMusicPlayerState(src *component.MusicPlayer) *component.MusicPlayer {
	if src == nil {
		return nil
	}

	players := make(map[string]*audio.Player, len(src.Players))
	for track, player := range src.Players {
		players[track] = player
	}

	trackVolumes := make(map[string]float64, len(src.TrackVolumes))
	for track, volume := range src.TrackVolumes {
		trackVolumes[track] = volume
	}

	return &component.MusicPlayer{
		Players:       players,
		TrackVolumes:  trackVolumes,
		CurrentTrack:  src.CurrentTrack,
		CurrentVolume: src.CurrentVolume,
		CurrentLoop:   src.CurrentLoop,
	}
}

// requestMusic queues a looping track on a short-lived request entity.
func requestMusic(w *ecs.World, track string) error {
	req := ecs.CreateEntity(w)
	return ecs.Add(w, req, component.MusicRequestComponent.Kind(), &component.MusicRequest{Track: track, Loop: true})
}
