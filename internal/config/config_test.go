package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.Equal(t, 60*time.Second, Default().API.Timeout())
}

func TestLoadFromPathMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "http://127.0.0.1:8080"

[log]
level = "debug"
`), 0o600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.API.BaseURL)
	assert.Equal(t, 60, cfg.API.TimeoutSecs)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "http://localhost:5000", cfg.Jobs.BaseURL)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("UNIFIEDAI_API_URL", "http://api.test")
	t.Setenv("UNIFIEDAI_JOBS_URL", "http://jobs.test")
	t.Setenv("UNIFIEDAI_TIMEOUT_SECS", "0")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "http://api.test", cfg.API.BaseURL)
	assert.Equal(t, "http://jobs.test", cfg.Jobs.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout())
	assert.Equal(t, time.Duration(0), cfg.Jobs.Timeout())
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "not a url"
	cfg.Log.Level = "loud"
	cfg.Jobs.TimeoutSecs = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")
	assert.Contains(t, err.Error(), "log.level")
	assert.Contains(t, err.Error(), "timeout_secs")
}

func TestLoadFromPathRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api\nbase_url="), 0o600))
	_, err := LoadFromPath(path)
	require.Error(t, err)
}
