// Package settings persists the few player preferences that survive a
// restart.
package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "settings"
	settingsProperty = "player"
)

type Settings struct {
	MusicMuted bool   `yaml:"music_muted"`
	CastShape  string `yaml:"cast_shape,omitempty"`
}

func Default() *Settings {
	return &Settings{}
}

// Manager loads and saves Settings through gdata. A Manager built with a nil
// gdata manager keeps settings in memory only.
type Manager struct {
	store    *gdata.Manager
	settings *Settings
}

// Open opens the gdata store for appName. If the store cannot be opened the
// returned Manager works in memory and the error is logged.
func Open(appName string) *Manager {
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("settings: open store %q: %v (settings will not persist)", appName, err)
		store = nil
	}
	return NewManager(store)
}

func NewManager(store *gdata.Manager) *Manager {
	m := &Manager{store: store, settings: Default()}
	if err := m.Load(); err != nil {
		log.Printf("settings: load: %v (using defaults)", err)
	}
	return m
}

// Persistent reports whether settings are backed by storage.
func (m *Manager) Persistent() bool {
	return m.store != nil
}

func (m *Manager) Load() error {
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		m.settings = Default()
		return nil
	}
	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.settings = Default()
		return fmt.Errorf("settings: read: %w", err)
	}
	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		m.settings = Default()
		return fmt.Errorf("settings: decode: %w", err)
	}
	m.settings = &loaded
	return nil
}

func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("settings: write: %w", err)
	}
	return nil
}

func (m *Manager) Settings() Settings {
	return *m.settings
}

func (m *Manager) MusicMuted() bool {
	return m.settings.MusicMuted
}

// SetMusicMuted updates and saves the mute flag. Save failures are logged.
func (m *Manager) SetMusicMuted(muted bool) {
	m.settings.MusicMuted = muted
	if err := m.Save(); err != nil {
		log.Printf("settings: %v", err)
	}
}

func (m *Manager) CastShape() string {
	return m.settings.CastShape
}

func (m *Manager) SetCastShape(shape string) {
	m.settings.CastShape = shape
	if err := m.Save(); err != nil {
		log.Printf("settings: %v", err)
	}
}
