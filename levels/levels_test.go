package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPlayground(t *testing.T) {
	lvl, err := Load("playground")
	require.NoError(t, err)

	assert.Equal(t, "playground", lvl.Name)
	assert.Equal(t, "theme", lvl.Music)
	assert.Less(t, lvl.Bounds.KillY, lvl.Bounds.MinY)

	prefabs := map[string]int{}
	for _, p := range lvl.Entities {
		prefabs[p.Prefab]++
	}
	assert.Equal(t, 1, prefabs["player"])
	assert.Equal(t, 1, prefabs["spawner"])
	assert.Equal(t, 3, prefabs["one_way_platform"])

	var spawner Placement
	for _, p := range lvl.Entities {
		if p.Prefab == "spawner" {
			spawner = p
		}
	}
	override, ok := spawner.Components["spawner"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 4, override["limit"])
}

func TestParseRejectsBadLevels(t *testing.T) {
	cases := map[string]string{
		"bounds":  "name: x\nbounds: {min_x: 1, max_x: 0, min_y: 0, max_y: 1}",
		"kill":    "name: x\nbounds: {min_x: 0, max_x: 1, min_y: 0, max_y: 1, kill_y: 2}",
		"prefab":  "name: x\nbounds: {min_x: 0, max_x: 1, min_y: 0, max_y: 1, kill_y: -1}\nentities: [{x: 1}]",
		"garbage": "name: [",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestNames(t *testing.T) {
	assert.Contains(t, Names(), "playground")
	assert.Equal(t, "playground.yaml", cleanLevelPath("levels/playground"))
}
