package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "sub", "test.db")
}

func TestSessionLifecycle(t *testing.T) {
	conn, err := Open(openTemp(t))
	require.NoError(t, err)
	defer conn.Close()

	_, ok, err := LoadSession(conn)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SaveSession(conn, "tok-1", "vedant", 100))
	require.NoError(t, SaveSession(conn, "tok-2", "vedant", 200))

	row, ok, err := LoadSession(conn)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-2", row.AccessToken)
	assert.Equal(t, "vedant", row.Identity)
	assert.Equal(t, int64(200), row.UpdatedAtUnix)

	require.NoError(t, ClearSession(conn))
	_, ok, err = LoadSession(conn)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionSurvivesReopen(t *testing.T) {
	path := openTemp(t)
	conn, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, SaveSession(conn, "tok", "me@example.com", 1))
	require.NoError(t, conn.Close())

	conn, err = Open(path)
	require.NoError(t, err)
	defer conn.Close()
	row, ok, err := LoadSession(conn)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok", row.AccessToken)
}
