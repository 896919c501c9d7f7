package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/platformer/behavior"
	"github.com/milk9111/platformer/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedPrefabsDecode(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		if name == "world.yaml" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			require.NoError(t, err)
			assert.NotEmpty(t, spec.Name)
			assert.NotEmpty(t, spec.Components)

			if raw, ok := spec.Components["physics_body"]; ok {
				body, err := DecodeComponentSpec[PhysicsBodyComponentSpec](raw)
				require.NoError(t, err)
				for _, c := range body.Colliders {
					_, err := c.Def()
					assert.NoError(t, err, c.Tag)
				}
			}
			if raw, ok := spec.Components["locomotion"]; ok {
				loco, err := DecodeComponentSpecOver(raw, DefaultLocomotionSpec())
				require.NoError(t, err)
				_, err = loco.Config()
				assert.NoError(t, err)
			}
			if raw, ok := spec.Components["moving_platform"]; ok {
				mp, err := DecodeComponentSpec[MovingPlatformComponentSpec](raw)
				require.NoError(t, err)
				_, err = behavior.ParseJointKind(mp.Joint)
				assert.NoError(t, err)
			}
			if raw, ok := spec.Components["render_layer"]; ok {
				rl, err := DecodeComponentSpec[RenderLayerComponentSpec](raw)
				require.NoError(t, err)
				_, err = ParseColor(rl.Color)
				assert.NoError(t, err)
			}
		})
	}
}

func TestPlayerPrefabLocomotion(t *testing.T) {
	spec, err := LoadEntityBuildSpec("player")
	require.NoError(t, err)

	loco, err := DecodeComponentSpecOver(spec.Components["locomotion"], DefaultLocomotionSpec())
	require.NoError(t, err)
	cfg, err := loco.Config()
	require.NoError(t, err)

	assert.Equal(t, behavior.CastCircle, cfg.Cast)
	assert.Equal(t, "PlatformEffector", cfg.PlatformTag)
	assert.Equal(t, physics.LayerGround|physics.LayerPlatform|physics.LayerDummy, cfg.Mask)
	assert.InDelta(t, 0.2, cfg.CoyoteTime, 1e-9)
	assert.InDelta(t, -0.5, cfg.FootOffset.Y, 1e-9)
}

func TestDecodeComponentSpecOverKeepsDefaults(t *testing.T) {
	raw := map[string]any{"move_speed": 7.5, "cast": "box"}
	loco, err := DecodeComponentSpecOver(raw, DefaultLocomotionSpec())
	require.NoError(t, err)

	cfg, err := loco.Config()
	require.NoError(t, err)
	def := behavior.DefaultLocomotionConfig()
	assert.InDelta(t, 7.5, cfg.MoveSpeed, 1e-9)
	assert.Equal(t, behavior.CastBox, cfg.Cast)
	assert.Equal(t, def.JumpSpeed, cfg.JumpSpeed)
	assert.Equal(t, def.ProbeSize, cfg.ProbeSize)
	assert.Equal(t, physics.LayerAll, cfg.Mask)

	same, err := DecodeComponentSpecOver[LocomotionComponentSpec](nil, DefaultLocomotionSpec())
	require.NoError(t, err)
	assert.Equal(t, DefaultLocomotionSpec(), same)
}

func TestLocomotionSpecRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]any{
		"cast":   {"cast": "capsule"},
		"mask":   {"mask": []string{"lava"}},
		"coyote": {"coyote_time": -1},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			loco, err := DecodeComponentSpecOver(raw, DefaultLocomotionSpec())
			require.NoError(t, err)
			_, err = loco.Config()
			assert.Error(t, err)
		})
	}
}

func TestColliderSpecDef(t *testing.T) {
	def, err := ColliderSpec{Tag: "PlatformEffector", Layer: "platform", Width: 3, Height: 0.25, OneWay: true}.Def()
	require.NoError(t, err)
	assert.Equal(t, physics.LayerPlatform, def.Layer)
	assert.Zero(t, def.Mask)
	assert.True(t, def.OneWay)

	_, err = ColliderSpec{Tag: "x", Layer: "lava", Radius: 1}.Def()
	assert.Error(t, err)
	_, err = ColliderSpec{Tag: "x", Layer: "ground", Mask: []string{"ground", "lava"}, Radius: 1}.Def()
	assert.Error(t, err)
	_, err = ColliderSpec{Tag: "x", Layer: "ground", Width: 1}.Def()
	assert.Error(t, err)
}

func TestLoadWorldSpec(t *testing.T) {
	spec, err := LoadWorldSpec()
	require.NoError(t, err)
	assert.InDelta(t, 0.02, spec.FixedStep, 1e-9)
	assert.Less(t, spec.GravityY, 0.0)
	assert.Positive(t, spec.PixelsPerUnit)
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.Color
		err  bool
	}{
		{in: "#ff8800", want: color.NRGBA{R: 0xff, G: 0x88, A: 0xff}},
		{in: "ff880080", want: color.NRGBA{R: 0xff, G: 0x88, A: 0x80}},
		{in: "Tomato", want: color.RGBA{R: 0xff, G: 0x63, B: 0x47, A: 0xff}},
		{in: "#ff88", err: true},
		{in: "zzzzzz", err: true},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if c.err {
			assert.Error(t, err, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestPathCleaning(t *testing.T) {
	assert.Equal(t, "player.yaml", cleanPrefabPath("player"))
	assert.Equal(t, "player.yaml", cleanPrefabPath("prefabs/player.yaml"))
	assert.Equal(t, "scripts/target_dummy.tengo", cleanScriptPath("target_dummy.tengo"))
	assert.Equal(t, "scripts/target_dummy.tengo", cleanScriptPath("prefabs/scripts/target_dummy.tengo"))
	assert.Empty(t, cleanScriptPath(""))
}

func TestLoadScript(t *testing.T) {
	src, err := LoadScript("target_dummy.tengo")
	require.NoError(t, err)
	assert.Contains(t, string(src), "update := func(engine, state)")
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("name: player"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Poll()...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "player.yaml", got[0])
	assert.NotContains(t, got, "notes.txt")

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
