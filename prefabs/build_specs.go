package prefabs

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/behavior"
	"github.com/milk9111/platformer/physics"
	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	return DecodeComponentSpecOver(raw, zero)
}

// DecodeComponentSpecOver decodes raw on top of base, so keys missing from
// the yaml keep base's values.
func DecodeComponentSpecOver[T any](raw any, base T) (T, error) {
	if raw == nil {
		return base, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return base, err
	}
	out := base
	if err := yaml.Unmarshal(b, &out); err != nil {
		return base, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type RenderLayerComponentSpec struct {
	Index int    `yaml:"index"`
	Color string `yaml:"color"`
}

type ColliderSpec struct {
	Tag      string   `yaml:"tag"`
	Layer    string   `yaml:"layer"`
	Mask     []string `yaml:"mask"`
	Width    float64  `yaml:"width"`
	Height   float64  `yaml:"height"`
	Radius   float64  `yaml:"radius"`
	OffsetX  float64  `yaml:"offset_x"`
	OffsetY  float64  `yaml:"offset_y"`
	Friction float64  `yaml:"friction"`
	OneWay   bool     `yaml:"one_way"`
	Trigger  bool     `yaml:"trigger"`
}

// Def resolves layer names into a physics.ColliderDef. An empty mask
// collides with everything.
func (c ColliderSpec) Def() (physics.ColliderDef, error) {
	layer, ok := physics.ParseLayers([]string{c.Layer})
	if !ok {
		return physics.ColliderDef{}, fmt.Errorf("collider %q: unknown layer %q", c.Tag, c.Layer)
	}
	var mask uint
	if len(c.Mask) > 0 {
		mask, ok = physics.ParseLayers(c.Mask)
		if !ok {
			return physics.ColliderDef{}, fmt.Errorf("collider %q: unknown layer in mask %v", c.Tag, c.Mask)
		}
	}
	if c.Radius <= 0 && (c.Width <= 0 || c.Height <= 0) {
		return physics.ColliderDef{}, fmt.Errorf("collider %q: needs a radius or a positive width and height", c.Tag)
	}
	return physics.ColliderDef{
		Tag:      c.Tag,
		Layer:    layer,
		Mask:     mask,
		Size:     cp.Vector{X: c.Width, Y: c.Height},
		Radius:   c.Radius,
		Offset:   cp.Vector{X: c.OffsetX, Y: c.OffsetY},
		Friction: c.Friction,
		OneWay:   c.OneWay,
		Trigger:  c.Trigger,
	}, nil
}

type PhysicsBodyComponentSpec struct {
	Type          string         `yaml:"type"`
	Mass          float64        `yaml:"mass"`
	FixedRotation bool           `yaml:"fixed_rotation"`
	Colliders     []ColliderSpec `yaml:"colliders"`
}

type LocomotionComponentSpec struct {
	MoveSpeed      float64  `yaml:"move_speed"`
	JumpSpeed      float64  `yaml:"jump_speed"`
	CoyoteTime     float64  `yaml:"coyote_time"`
	JumpBufferTime float64  `yaml:"jump_buffer_time"`
	Cast           string   `yaml:"cast"`
	ProbeDistance  float64  `yaml:"probe_distance"`
	ProbeWidth     float64  `yaml:"probe_width"`
	ProbeHeight    float64  `yaml:"probe_height"`
	FootOffsetY    float64  `yaml:"foot_offset_y"`
	HeadOffsetY    float64  `yaml:"head_offset_y"`
	Mask           []string `yaml:"mask"`
	PlatformTag    string   `yaml:"platform_tag"`
	EdgeSlipOffset float64  `yaml:"edge_slip_offset"`
	JumpCue        string   `yaml:"jump_cue"`
	CastHitLog     bool     `yaml:"cast_hit_log"`
}

// DefaultLocomotionSpec mirrors behavior.DefaultLocomotionConfig.
func DefaultLocomotionSpec() LocomotionComponentSpec {
	d := behavior.DefaultLocomotionConfig()
	return LocomotionComponentSpec{
		MoveSpeed:      d.MoveSpeed,
		JumpSpeed:      d.JumpSpeed,
		CoyoteTime:     d.CoyoteTime,
		JumpBufferTime: d.JumpBufferTime,
		Cast:           d.Cast.String(),
		ProbeDistance:  d.ProbeDistance,
		ProbeWidth:     d.ProbeSize.X,
		ProbeHeight:    d.ProbeSize.Y,
		FootOffsetY:    d.FootOffset.Y,
		HeadOffsetY:    d.HeadOffset.Y,
		PlatformTag:    d.PlatformTag,
		EdgeSlipOffset: d.EdgeSlipOffset,
		JumpCue:        d.JumpCue,
	}
}

func (s LocomotionComponentSpec) Config() (behavior.LocomotionConfig, error) {
	cast, err := behavior.ParseCastShape(s.Cast)
	if err != nil {
		return behavior.LocomotionConfig{}, err
	}
	mask := physics.LayerAll
	if len(s.Mask) > 0 {
		var ok bool
		mask, ok = physics.ParseLayers(s.Mask)
		if !ok {
			return behavior.LocomotionConfig{}, fmt.Errorf("locomotion: unknown layer in mask %v", s.Mask)
		}
	}
	cfg := behavior.LocomotionConfig{
		MoveSpeed:      s.MoveSpeed,
		JumpSpeed:      s.JumpSpeed,
		CoyoteTime:     s.CoyoteTime,
		JumpBufferTime: s.JumpBufferTime,
		Cast:           cast,
		ProbeDistance:  s.ProbeDistance,
		ProbeSize:      cp.Vector{X: s.ProbeWidth, Y: s.ProbeHeight},
		FootOffset:     cp.Vector{X: 0, Y: s.FootOffsetY},
		HeadOffset:     cp.Vector{X: 0, Y: s.HeadOffsetY},
		Mask:           mask,
		PlatformTag:    s.PlatformTag,
		EdgeSlipOffset: s.EdgeSlipOffset,
		JumpCue:        s.JumpCue,
	}
	return cfg, cfg.Validate()
}

type PlatformEffectorComponentSpec struct {
	Delay float64 `yaml:"delay"`
}

type MovingPlatformComponentSpec struct {
	Joint         string  `yaml:"joint"`
	AxisX         float64 `yaml:"axis_x"`
	AxisY         float64 `yaml:"axis_y"`
	Lower         float64 `yaml:"lower"`
	Upper         float64 `yaml:"upper"`
	PositiveSpeed float64 `yaml:"positive_speed"`
	NegativeSpeed float64 `yaml:"negative_speed"`
}

type SpawnerComponentSpec struct {
	Template string  `yaml:"template"`
	Limit    int     `yaml:"limit"`
	Interval float64 `yaml:"interval"`
	OffsetX  float64 `yaml:"offset_x"`
	OffsetY  float64 `yaml:"offset_y"`
}

type TargetDummyComponentSpec struct {
	Script string `yaml:"script"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	Volume float64 `yaml:"volume"`
}

type AudioComponentSpec struct {
	Clips []AudioClipSpec `yaml:"clips"`
}

type MusicPlayerComponentSpec struct {
	Tracks   []AudioClipSpec `yaml:"tracks"`
	Autoplay string          `yaml:"autoplay"`
}

type MusicToggleComponentSpec struct {
	Track string `yaml:"track"`
}

type CameraComponentSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}
