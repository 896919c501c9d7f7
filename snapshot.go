package main

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/system"
	"gopkg.in/yaml.v3"
)

type vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// playerSnapshot is what F3 copies: enough to paste into a bug report or
// back into player.yaml.
type playerSnapshot struct {
	Frame    uint64  `yaml:"frame"`
	Position vec2    `yaml:"position"`
	Velocity vec2    `yaml:"velocity"`
	Grounded bool    `yaml:"grounded"`
	Coyote   float64 `yaml:"coyote"`
	Buffer   float64 `yaml:"jump_buffer"`
	Safe     vec2    `yaml:"last_grounded"`
	Down     string  `yaml:"down_hit"`
	Up       string  `yaml:"up_hit"`
	Muted    bool    `yaml:"music_muted"`

	Stats struct {
		Jumps    int `yaml:"jumps"`
		Stomps   int `yaml:"stomps"`
		Respawns int `yaml:"respawns"`
	} `yaml:"stats"`

	Tuning struct {
		MoveSpeed      float64 `yaml:"move_speed"`
		JumpSpeed      float64 `yaml:"jump_speed"`
		CoyoteTime     float64 `yaml:"coyote_time"`
		JumpBufferTime float64 `yaml:"jump_buffer_time"`
		Cast           string  `yaml:"cast"`
		ProbeDistance  float64 `yaml:"probe_distance"`
	} `yaml:"tuning"`
}

func playerSnapshotYAML(w *ecs.World) ([]byte, error) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("no player")
	}
	loco, ok := ecs.Get(w, player, component.LocomotionComponent.Kind())
	if !ok || loco.Controller == nil || loco.Body == nil {
		return nil, fmt.Errorf("player controller not attached yet")
	}

	st := loco.Controller.State()
	hits := loco.Controller.LastHits()
	cfg := loco.Controller.Config()
	pos, vel := loco.Body.Position(), loco.Body.Velocity()

	snap := playerSnapshot{
		Frame:    w.Frame(),
		Position: vec2{pos.X, pos.Y},
		Velocity: vec2{vel.X, vel.Y},
		Grounded: st.Grounded,
		Coyote:   max(0, st.Coyote),
		Buffer:   max(0, st.JumpBuffer),
		Safe:     vec2{st.LastGrounded.X, st.LastGrounded.Y},
		Down:     hitTag(hits.Down),
		Up:       hitTag(hits.Up),
		Muted:    system.MusicMuted(w),
	}
	if stats, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
		snap.Stats.Jumps = stats.Jumps
		snap.Stats.Stomps = stats.Stomps
		snap.Stats.Respawns = stats.Respawns
	}
	snap.Tuning.MoveSpeed = cfg.MoveSpeed
	snap.Tuning.JumpSpeed = cfg.JumpSpeed
	snap.Tuning.CoyoteTime = cfg.CoyoteTime
	snap.Tuning.JumpBufferTime = cfg.JumpBufferTime
	snap.Tuning.Cast = cfg.Cast.String()
	snap.Tuning.ProbeDistance = cfg.ProbeDistance

	return yaml.Marshal(snap)
}

func hitTag(c interface{ Tag() string }) string {
	if c == nil {
		return ""
	}
	return c.Tag()
}
