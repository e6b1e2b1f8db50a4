package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	logger, err := New(path, "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("request done", zap.String("path", "api/v1/aiModel/get-models"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "request done")
	assert.Contains(t, string(data), "get-models")
	assert.NotContains(t, string(data), "hidden")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "app.log"), "chatty")
	require.Error(t, err)
}
