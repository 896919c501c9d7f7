package component

import "github.com/milk9111/platformer/behavior"

// MusicToggle mutes and unmutes Track when the mute key is pressed.
type MusicToggle struct {
	Track  string
	Toggle *behavior.MusicToggle
}

var MusicToggleComponent = NewComponent[MusicToggle]()
