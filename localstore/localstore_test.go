package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("authToken", "tok-123"))
	require.NoError(t, s.Set("currentUser", `{"id_usuario":7}`))

	value, ok := s.Get("authToken")
	assert.True(t, ok)
	assert.Equal(t, "tok-123", value)

	// A fresh store over the same directory sees the persisted data.
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	value, ok = reopened.Get("currentUser")
	assert.True(t, ok)
	assert.Equal(t, `{"id_usuario":7}`, value)
}

func TestFileStoreDeleteAndClear(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))

	require.NoError(t, s.Delete("a"))
	_, ok := s.Get("a")
	assert.False(t, ok)

	require.NoError(t, s.Clear())
	_, ok = s.Get("b")
	assert.False(t, ok)
}

func TestFileStoreSurvivesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte("{not json"), 0o600))

	s, err := NewFileStore(dir)
	require.NoError(t, err)

	_, ok := s.Get("anything")
	assert.False(t, ok)
	require.NoError(t, s.Set("k", "v"))
}

func TestMemStoreIsIsolated(t *testing.T) {
	a := NewMemStore()
	b := NewMemStore()

	require.NoError(t, a.Set("k", "v"))
	_, ok := b.Get("k")
	assert.False(t, ok)
}
