package behavior

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// MusicToggle mutes and unmutes a music track on a key press.
type MusicToggle struct {
	router AudioRouter
	track  string
	muted  bool

	// OnChange, when set, is called after every toggle.
	OnChange func(muted bool)
}

func NewMusicToggle(router AudioRouter, track string) (*MusicToggle, error) {
	if router == nil {
		return nil, fmt.Errorf("music toggle: %w", ErrNilCollaborator)
	}
	if track == "" {
		return nil, fmt.Errorf("music toggle: %w: empty track", ErrInvalidConfig)
	}
	return &MusicToggle{router: router, track: track}, nil
}

func (m *MusicToggle) Muted() bool { return m.muted }

// SetMuted seeds the state without emitting anything.
func (m *MusicToggle) SetMuted(muted bool) { m.muted = muted }

func (m *MusicToggle) Update(pressed bool) {
	if pressed {
		m.Toggle()
	}
}

func (m *MusicToggle) Toggle() {
	if m.muted {
		m.router.PlaySound(m.track, cp.Vector{})
		m.muted = false
	} else {
		m.router.StopSound(m.track)
		m.muted = true
	}
	if m.OnChange != nil {
		m.OnChange(m.muted)
	}
}
