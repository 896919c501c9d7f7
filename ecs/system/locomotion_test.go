package system

import (
	"testing"

	"github.com/milk9111/platformer/behavior"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocomotionGroundsAndJumps(t *testing.T) {
	w, pw := newTestWorld()
	s := newTestScheduler(pw)
	place(t, w, "ground", 0, -0.5)
	player := place(t, w, "player", 0, 1)

	runFrames(s, w, 60)

	loco, ok := ecs.Get(w, player, component.LocomotionComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, loco.Controller, "attached once the body exists")
	assert.True(t, loco.Controller.State().Grounded)

	safe, _ := ecs.Get(w, player, component.SafeRespawnComponent.Kind())
	assert.True(t, safe.Initialized)

	in, _ := ecs.Get(w, player, component.InputComponent.Kind())
	in.JumpPressed = true
	runFrames(s, w, 1)
	in.JumpPressed = false
	runFrames(s, w, 10)

	stats, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	assert.Equal(t, 1, stats.Jumps)
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	assert.Greater(t, tr.Y, 1.0)
	assert.False(t, loco.Controller.State().Grounded)

	a, _ := ecs.Get(w, player, component.AudioComponent.Kind())
	assert.True(t, a.Play[a.Index("Jump")], "jump cue flagged for the audio system")

	anim, _ := ecs.Get(w, player, component.AnimatorComponent.Kind())
	assert.Equal(t, AnimStateJump, anim.State)
}

func TestLocomotionStompsDummy(t *testing.T) {
	w, pw := newTestWorld()
	s := newTestScheduler(pw)
	place(t, w, "ground", 0, -0.5)
	dummy := place(t, w, "target_dummy", 0, 0.35)
	td, _ := ecs.Get(w, dummy, component.TargetDummyComponent.Kind())
	td.Script = ""
	player := place(t, w, "player", 0, 2)

	for i := 0; i < 120 && ecs.IsAlive(w, dummy); i++ {
		s.Update(w, testStep)
	}

	assert.False(t, ecs.IsAlive(w, dummy))
	stats, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	assert.Equal(t, 1, stats.Stomps)
	a, _ := ecs.Get(w, player, component.AudioComponent.Kind())
	assert.True(t, a.Play[a.Index("Stomp")])
}

func TestSetCastShape(t *testing.T) {
	w, pw := newTestWorld()
	s := newTestScheduler(pw)
	place(t, w, "ground", 0, -0.5)
	player := place(t, w, "player", 0, 1)
	runFrames(s, w, 2)

	require.NoError(t, SetCastShape(w, behavior.CastBox))
	loco, _ := ecs.Get(w, player, component.LocomotionComponent.Kind())
	assert.Equal(t, behavior.CastBox, loco.Config.Cast)
	assert.Equal(t, behavior.CastBox, loco.Controller.Config().Cast)

	assert.ErrorIs(t, SetCastShape(w, behavior.CastShape(42)), behavior.ErrInvalidConfig)
	assert.Equal(t, behavior.CastBox, loco.Config.Cast, "bad shape leaves the config alone")
}

func TestDescribeHit(t *testing.T) {
	assert.Equal(t, "none", describeHit(nil))
}
