package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unifiedai/internal/db"
)

func TestMemoryOnlyStore(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())

	require.NoError(t, s.Set("tok", "alice"))
	assert.True(t, s.LoggedIn())
	assert.Equal(t, "tok", s.Token())
	assert.Equal(t, "alice", s.Identity())

	require.NoError(t, s.Clear())
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Identity())
}

func TestPersistedStoreRestoresToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.db")
	conn, err := db.Open(path)
	require.NoError(t, err)

	s, err := New(conn)
	require.NoError(t, err)
	require.NoError(t, s.Set("tok", "bob"))
	require.NoError(t, conn.Close())

	conn, err = db.Open(path)
	require.NoError(t, err)
	defer conn.Close()

	restored, err := New(conn)
	require.NoError(t, err)
	assert.Equal(t, "tok", restored.Token())
	assert.Equal(t, "bob", restored.Identity())

	require.NoError(t, restored.Clear())
	again, err := New(conn)
	require.NoError(t, err)
	assert.False(t, again.LoggedIn())
}
