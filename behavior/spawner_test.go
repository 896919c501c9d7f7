package behavior

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnerRespectsLimit(t *testing.T) {
	fake := &fakeEntitySpawner{}
	sp, err := NewSpawner(3, 1.0, "target_dummy", fake)
	require.NoError(t, err)

	at := cp.Vector{X: 4, Y: 2}
	const dt = 0.01
	for i := 0; i < 350; i++ {
		require.NoError(t, sp.Update(dt, at))
		require.LessOrEqual(t, sp.Live(), 3)
	}
	assert.Equal(t, 3, sp.Live())
	assert.Equal(t, 3, sp.Spawned())
	assert.Len(t, fake.handles, 3)
	for _, p := range fake.at {
		assert.Equal(t, at, p)
	}

	for i := 0; i < 500; i++ {
		require.NoError(t, sp.Update(dt, at))
	}
	assert.Equal(t, 3, sp.Spawned(), "no spawns while at the limit")
}

func TestSpawnerTimerFreezesAtLimit(t *testing.T) {
	fake := &fakeEntitySpawner{}
	sp, err := NewSpawner(1, 1.0, "target_dummy", fake)
	require.NoError(t, err)

	require.NoError(t, sp.Update(1.1, cp.Vector{}))
	require.Equal(t, 1, sp.Live())
	assert.Equal(t, 1.0, sp.Timer())

	require.NoError(t, sp.Update(5, cp.Vector{}))
	assert.Equal(t, 1.0, sp.Timer())
}

func TestSpawnerResumesAfterDestroy(t *testing.T) {
	fake := &fakeEntitySpawner{}
	sp, err := NewSpawner(2, 0.5, "target_dummy", fake)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, sp.Update(0.6, cp.Vector{}))
	}
	require.Equal(t, 2, sp.Live())

	h := fake.handles[0]
	h.Destroyed()
	assert.True(t, h.Released())
	assert.Equal(t, 1, sp.Live())

	h.Destroyed()
	assert.Equal(t, 1, sp.Live(), "second notification ignored")

	require.NoError(t, sp.Update(0.6, cp.Vector{}))
	assert.Equal(t, 2, sp.Live())
	assert.Equal(t, 3, sp.Spawned())
}

func TestSpawnerZeroLimit(t *testing.T) {
	fake := &fakeEntitySpawner{}
	sp, err := NewSpawner(0, 0.1, "target_dummy", fake)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, sp.Update(1, cp.Vector{}))
	}
	assert.Empty(t, fake.handles)
}

func TestSpawnerZeroIntervalSpawnsEveryFrame(t *testing.T) {
	fake := &fakeEntitySpawner{}
	sp, err := NewSpawner(5, 0, "target_dummy", fake)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, sp.Update(0.016, cp.Vector{}))
	}
	assert.Equal(t, 3, sp.Live())
}

func TestSpawnerSpawnFailure(t *testing.T) {
	fake := &fakeEntitySpawner{fail: true}
	sp, err := NewSpawner(3, 0.5, "target_dummy", fake)
	require.NoError(t, err)

	err = sp.Update(1, cp.Vector{})
	require.ErrorIs(t, err, errSpawnFailed)
	assert.Contains(t, err.Error(), `"target_dummy"`)
	assert.Equal(t, 0, sp.Live())

	fake.fail = false
	require.NoError(t, sp.Update(0.01, cp.Vector{}), "timer is still expired, retries next frame")
	assert.Equal(t, 1, sp.Live())
}

func TestNewSpawnerValidation(t *testing.T) {
	_, err := NewSpawner(1, 1, "x", nil)
	assert.ErrorIs(t, err, ErrNilCollaborator)
	_, err = NewSpawner(-1, 1, "x", &fakeEntitySpawner{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = NewSpawner(1, -1, "x", &fakeEntitySpawner{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSpawnHandleNil(t *testing.T) {
	var h *SpawnHandle
	assert.NotPanics(t, h.Destroyed)
	assert.False(t, h.Released())
}
