package settings

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	store, err := gdata.Open(gdata.Config{AppName: "platformer_test"})
	require.NoError(t, err)
	return store
}

func TestManagerDefaults(t *testing.T) {
	m := NewManager(openTestStore(t))
	assert.True(t, m.Persistent())
	assert.False(t, m.MusicMuted())
	assert.Equal(t, "", m.CastShape())
}

func TestManagerRoundTrip(t *testing.T) {
	store := openTestStore(t)

	m := NewManager(store)
	m.SetMusicMuted(true)
	m.SetCastShape("box")

	reopened := NewManager(store)
	assert.True(t, reopened.MusicMuted())
	assert.Equal(t, "box", reopened.CastShape())
}

func TestManagerCorruptDataFallsBack(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.SaveObjectProp(settingsObject, settingsProperty, []byte("music_muted: [")))

	m := NewManager(store)
	assert.False(t, m.MusicMuted())
	assert.Error(t, m.Load())
}

func TestManagerInMemory(t *testing.T) {
	m := NewManager(nil)
	assert.False(t, m.Persistent())
	m.SetMusicMuted(true)
	assert.True(t, m.MusicMuted())
	assert.NoError(t, m.Save())
	assert.NoError(t, m.Load())
	assert.False(t, m.MusicMuted(), "nothing persisted")
}
