package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Level is a scene: prefab placements plus the playable extent.
type Level struct {
	Name     string      `yaml:"name"`
	Bounds   Bounds      `yaml:"bounds"`
	Music    string      `yaml:"music"`
	Entities []Placement `yaml:"entities"`
}

// Bounds is in world units, y up. Bodies falling below KillY are respawned
// or removed.
type Bounds struct {
	MinX  float64 `yaml:"min_x"`
	MaxX  float64 `yaml:"max_x"`
	MinY  float64 `yaml:"min_y"`
	MaxY  float64 `yaml:"max_y"`
	KillY float64 `yaml:"kill_y"`
}

// Placement puts a prefab at X, Y. Components are merged over the prefab's
// own component specs key by key.
type Placement struct {
	Prefab     string         `yaml:"prefab"`
	X          float64        `yaml:"x"`
	Y          float64        `yaml:"y"`
	Rotation   float64        `yaml:"rotation"`
	Components map[string]any `yaml:"components"`
}

// Load reads a level by name. A copy under ./levels overrides the embedded
// one.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", clean))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", clean, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	b := l.Bounds
	if b.MinX >= b.MaxX || b.MinY >= b.MaxY {
		return fmt.Errorf("level %q: empty bounds", l.Name)
	}
	if b.KillY > b.MinY {
		return fmt.Errorf("level %q: kill_y %v is above min_y %v", l.Name, b.KillY, b.MinY)
	}
	for i, p := range l.Entities {
		if strings.TrimSpace(p.Prefab) == "" {
			return fmt.Errorf("level %q: entity %d has no prefab", l.Name, i)
		}
	}
	return nil
}

// Names lists the embedded levels without extension.
func Names() []string {
	matches, _ := fs.Glob(LevelsFS, "*.yaml")
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSuffix(m, ".yaml"))
	}
	return out
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".yaml") {
		s += ".yaml"
	}
	return s
}
