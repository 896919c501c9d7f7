package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/behavior"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addBounds(t *testing.T, w *ecs.World, b component.LevelBounds) {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &b))
}

func TestRespawnBelowKillPlane(t *testing.T) {
	w, pw := newTestWorld()
	addBounds(t, w, component.LevelBounds{MinX: -10, MaxX: 10, MinY: -5, MaxY: 10, KillY: -8})
	player := place(t, w, "player", 1, 2)
	w.SetDeltaTime(testStep)
	NewPhysicsSystem(pw).SyncEntities(w)

	rs := NewRespawnSystem()
	rs.Update(w)
	safe, _ := ecs.Get(w, player, component.SafeRespawnComponent.Kind())
	require.True(t, safe.Initialized, "seeded from the spawn point")

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	tr.Y = -9
	pb, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	pb.Body.SetVelocityVector(cp.Vector{X: 3, Y: -20})
	rs.Update(w)

	assert.Equal(t, 1.0, tr.X)
	assert.Equal(t, 2.0, tr.Y)
	assert.Equal(t, 1.0, pb.Body.Position().X)
	assert.Equal(t, 2.0, pb.Body.Position().Y)
	assert.Zero(t, pb.Body.Velocity().Length())
	assert.False(t, ecs.Has(w, player, component.RespawnRequestComponent.Kind()))

	stats, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	assert.Equal(t, 1, stats.Respawns)
}

func TestRespawnRequestWithoutBounds(t *testing.T) {
	w, _ := newTestWorld()
	player := place(t, w, "player", 0, 0)
	safe, _ := ecs.Get(w, player, component.SafeRespawnComponent.Kind())
	*safe = component.SafeRespawn{X: 5, Y: 6, Initialized: true}
	require.NoError(t, ecs.Add(w, player, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{}))

	NewRespawnSystem().Update(w)
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	assert.Equal(t, 5.0, tr.X)
	assert.Equal(t, 6.0, tr.Y)
	assert.False(t, ecs.Has(w, player, component.RespawnRequestComponent.Kind()))
}

func TestAnimationStates(t *testing.T) {
	cases := []struct {
		name   string
		floats map[string]float64
		bools  map[string]bool
		want   string
	}{
		{"idle", nil, nil, AnimStateIdle},
		{"run", map[string]float64{behavior.AnimXVelocity: 1}, nil, AnimStateRun},
		{"jump", map[string]float64{behavior.AnimYVelocity: 3}, map[string]bool{behavior.AnimJump: true}, AnimStateJump},
		{"fall", map[string]float64{behavior.AnimYVelocity: -3}, map[string]bool{behavior.AnimJump: true}, AnimStateFall},
		{"crouch", nil, map[string]bool{behavior.AnimCrouch: true}, AnimStateCrouch},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, resolveAnimState(&component.Animator{Floats: c.floats, Bools: c.bools}))
		})
	}
}

func TestAnimationStateTime(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	anim := component.NewAnimator()
	require.NoError(t, ecs.Add(w, e, component.AnimatorComponent.Kind(), anim))

	as := NewAnimationSystem()
	w.SetDeltaTime(0.1)
	as.Update(w)
	as.Update(w)
	assert.Equal(t, AnimStateIdle, anim.State)
	assert.InDelta(t, 0.2, anim.StateTime, 1e-9)

	anim.SetFloat(behavior.AnimXVelocity, 1)
	as.Update(w)
	assert.Equal(t, AnimStateRun, anim.State)
	assert.Zero(t, anim.StateTime)
}

func TestCameraFollowsAndClamps(t *testing.T) {
	w, _ := newTestWorld()
	addBounds(t, w, component.LevelBounds{MinX: -14, MaxX: 22, MinY: -6, MaxY: 14, KillY: -8})
	cam := place(t, w, "camera", 0, 0)
	player := place(t, w, "player", 0, 1)

	cs := NewCameraSystem(960, 540, 32)
	cs.Update(w)

	ct, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	assert.InDelta(t, 1, ct.X, 1e-9, "left edge clamps")
	assert.InDelta(t, 2.4375, ct.Y, 1e-9, "bottom edge clamps")

	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	pt.X, pt.Y = 5, 4
	cs.Update(w)
	c, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	assert.InDelta(t, 1+4*0.15, ct.X, 1e-9, "eases toward the player")
	assert.Equal(t, ct.X, c.X)
}
