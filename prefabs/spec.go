package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// WorldSpec is the global simulation tuning in world.yaml.
type WorldSpec struct {
	GravityY      float64 `yaml:"gravity_y"`
	FixedStep     float64 `yaml:"fixed_step"`
	MaxFixedSteps int     `yaml:"max_fixed_steps"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
	ScreenWidth   int     `yaml:"screen_width"`
	ScreenHeight  int     `yaml:"screen_height"`
	Background    string  `yaml:"background"`
}

func DefaultWorldSpec() WorldSpec {
	return WorldSpec{
		GravityY:      -25,
		FixedStep:     0.02,
		MaxFixedSteps: 5,
		PixelsPerUnit: 32,
		ScreenWidth:   960,
		ScreenHeight:  540,
		Background:    "midnightblue",
	}
}

// LoadWorldSpec reads world.yaml over the defaults.
func LoadWorldSpec() (WorldSpec, error) {
	spec := DefaultWorldSpec()
	data, err := Load("world.yaml")
	if err != nil {
		return spec, fmt.Errorf("prefabs: load world.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("prefabs: unmarshal world.yaml: %w", err)
	}
	if spec.FixedStep <= 0 || spec.PixelsPerUnit <= 0 {
		return spec, fmt.Errorf("prefabs: world.yaml: fixed_step and pixels_per_unit must be positive")
	}
	return spec, nil
}

// ParseColor accepts an x/image colornames name ("tomato") or a hex string
// ("#ff8800", "ff8800cc").
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(name, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("invalid color %q", s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return nil, err
	}
	g, err := parse(2)
	if err != nil {
		return nil, err
	}
	b, err := parse(4)
	if err != nil {
		return nil, err
	}

	a := uint8(255)
	if len(hex) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
