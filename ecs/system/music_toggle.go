package system

import (
	"log"

	"github.com/milk9111/platformer/behavior"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/settings"
)

// AudioToggleSystem mutes and unmutes the music when the mute key is
// pressed. The mute flag is seeded from and saved to settings.
type AudioToggleSystem struct {
	settings *settings.Manager
}

// NewAudioToggleSystem takes the settings store; nil keeps the flag in the
// toggle only.
func NewAudioToggleSystem(s *settings.Manager) *AudioToggleSystem {
	return &AudioToggleSystem{settings: s}
}

func (s *AudioToggleSystem) Update(w *ecs.World) {
	pressed := false
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		pressed = pressed || in.MutePressed
	})

	ecs.ForEach(w, component.MusicToggleComponent.Kind(), func(e ecs.Entity, mt *component.MusicToggle) {
		if mt.Toggle == nil {
			if err := s.attach(w, mt); err != nil {
				log.Printf("music toggle: entity=%v: %v", e, err)
				_ = ecs.Remove(w, e, component.MusicToggleComponent.Kind())
				return
			}
		}
		mt.Toggle.Update(pressed)
	})
}

func (s *AudioToggleSystem) attach(w *ecs.World, mt *component.MusicToggle) error {
	toggle, err := behavior.NewMusicToggle(musicRouter{w: w}, mt.Track)
	if err != nil {
		return err
	}
	if s.settings != nil {
		if s.settings.MusicMuted() {
			toggle.SetMuted(true)
			StopMusic(w)
		}
		toggle.OnChange = func(muted bool) {
			log.Printf("music toggle: muted=%v", muted)
			s.settings.SetMusicMuted(muted)
		}
	}
	mt.Toggle = toggle
	return nil
}

// MusicMuted reports the state of the first music toggle.
func MusicMuted(w *ecs.World) bool {
	muted := false
	if e, ok := ecs.First(w, component.MusicToggleComponent.Kind()); ok {
		if mt, ok := ecs.Get(w, e, component.MusicToggleComponent.Kind()); ok && mt.Toggle != nil {
			muted = mt.Toggle.Muted()
		}
	}
	return muted
}

// ToggleMusic flips the first music toggle, as the pause menu does.
func ToggleMusic(w *ecs.World) {
	if e, ok := ecs.First(w, component.MusicToggleComponent.Kind()); ok {
		if mt, ok := ecs.Get(w, e, component.MusicToggleComponent.Kind()); ok && mt.Toggle != nil {
			mt.Toggle.Toggle()
		}
	}
}
