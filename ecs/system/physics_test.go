package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStep = 0.02

func newTestWorld() (*ecs.World, *physics.World) {
	return ecs.NewWorld(), physics.NewWorld(cp.Vector{X: 0, Y: -25})
}

func place(t *testing.T, w *ecs.World, prefab string, x, y float64) ecs.Entity {
	t.Helper()
	e, err := entity.BuildEntity(w, prefab)
	require.NoError(t, err)
	require.NoError(t, entity.SetEntityTransform(w, e, x, y, 0))
	return e
}

// newTestScheduler wires the gameplay systems in frame order, without input,
// audio output or rendering.
func newTestScheduler(pw *physics.World) *ecs.Scheduler {
	s := ecs.NewScheduler(testStep)
	s.AddFixed(NewLocomotionPhysicsSystem())
	s.AddFixed(NewPhysicsSystem(pw))
	s.Add(NewLocomotionSystem(pw))
	s.Add(NewPlatformResetSystem())
	s.Add(NewMovingPlatformSystem(pw))
	s.Add(NewSpawnerSystem())
	s.Add(NewTargetDummySystem())
	s.Add(NewRespawnSystem())
	s.Add(NewAnimationSystem())
	return s
}

func runFrames(s *ecs.Scheduler, w *ecs.World, n int) {
	for i := 0; i < n; i++ {
		s.Update(w, testStep)
	}
}

func TestPhysicsSystemCreatesBodies(t *testing.T) {
	w, pw := newTestWorld()
	ps := NewPhysicsSystem(pw)

	ground := place(t, w, "ground", 0, -0.5)
	player := place(t, w, "player", 0, 2)

	w.SetDeltaTime(testStep)
	ps.Update(w)

	gb, ok := ecs.Get(w, ground, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, gb.Body)
	require.Len(t, gb.Attached, 1)
	owner, ok := OwnerOf(gb.Attached[0])
	require.True(t, ok)
	assert.Equal(t, ground, owner)
	assert.Equal(t, cp.Vector{X: 4, Y: 1}, gb.ShapeSize)

	pb, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, pb.Collider())
	assert.NotEqual(t, gb.Collider().Group(), pb.Collider().Group())

	for i := 0; i < 100; i++ {
		ps.Update(w)
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	assert.InDelta(t, 0.5, tr.Y, 0.15, "player rests on the ground")
	assert.InDelta(t, 0, tr.X, 1e-6)
}

func TestPhysicsSystemPrunesDestroyedEntities(t *testing.T) {
	w, pw := newTestWorld()
	ps := NewPhysicsSystem(pw)
	ground := place(t, w, "ground", 0, -0.5)

	w.SetDeltaTime(testStep)
	ps.Update(w)
	gb, _ := ecs.Get(w, ground, component.PhysicsBodyComponent.Kind())
	body := gb.Body
	require.Len(t, pw.Colliders(body), 1)

	ecs.DestroyEntity(w, ground)
	ps.Update(w)
	assert.Empty(t, pw.Colliders(body))
	assert.Empty(t, ps.bodies)
}

func TestOwnerOf(t *testing.T) {
	_, ok := OwnerOf(nil)
	assert.False(t, ok)

	pw := physics.NewWorld(cp.Vector{})
	c := pw.AddCollider(pw.AddStaticBody(cp.Vector{}), physics.ColliderDef{Tag: "Ground", Layer: physics.LayerGround, Size: cp.Vector{X: 1, Y: 1}})
	_, ok = OwnerOf(c)
	assert.False(t, ok, "collider without an entity")
}

func TestColliderExtent(t *testing.T) {
	got := colliderExtent([]physics.ColliderDef{
		{Size: cp.Vector{X: 1, Y: 2}},
		{Radius: 0.5, Offset: cp.Vector{X: 1}},
	})
	assert.Equal(t, cp.Vector{X: 3, Y: 2}, got)
	assert.Equal(t, cp.Vector{}, colliderExtent(nil))
}
