// Package config loads the client configuration.
//
// Values come from built-in defaults, then ~/.config/unifiedai/config.toml
// when present, then UNIFIEDAI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const AppName = "unifiedai"

type Config struct {
	API  APIConfig  `toml:"api"`
	Jobs JobsConfig `toml:"jobs"`
	Log  LogConfig  `toml:"log"`
	UI   UIConfig   `toml:"ui"`
}

// APIConfig points at the Unified AI backend.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	// TimeoutSecs bounds each request. 0 disables the timeout.
	TimeoutSecs int `toml:"timeout_secs"`
}

// JobsConfig points at the job tracker service.
type JobsConfig struct {
	BaseURL     string `toml:"base_url"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

type LogConfig struct {
	// Path of the log file. Empty means <config dir>/unifiedai/unifiedai.log.
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

type UIConfig struct {
	// GlamourStyle is "auto", "dark", "light" or "notty".
	GlamourStyle string `toml:"glamour_style"`
	// DBPath overrides the session database location.
	DBPath string `toml:"db_path"`
}

func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "https://unifiedai.onrender.com",
			TimeoutSecs: 60,
		},
		Jobs: JobsConfig{
			BaseURL:     "http://localhost:5000",
			TimeoutSecs: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			GlamourStyle: "auto",
		},
	}
}

func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

func (j JobsConfig) Timeout() time.Duration {
	return time.Duration(j.TimeoutSecs) * time.Second
}

// Dir returns the directory holding config, log and session files.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, AppName), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the default config file if it exists. A missing file is not
// an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, cfg.Validate()
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, cfg.Validate()
	}
	return LoadFromPath(path)
}

func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("UNIFIEDAI_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("UNIFIEDAI_JOBS_URL"); v != "" {
		c.Jobs.BaseURL = v
	}
	if v := os.Getenv("UNIFIEDAI_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("UNIFIEDAI_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSecs = n
			c.Jobs.TimeoutSecs = n
		}
	}
}

func (c *Config) Validate() error {
	var errs []error
	for name, raw := range map[string]string{"api.base_url": c.API.BaseURL, "jobs.base_url": c.Jobs.BaseURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s: not an absolute URL: %q", name, raw))
		}
	}
	if c.API.TimeoutSecs < 0 || c.Jobs.TimeoutSecs < 0 {
		errs = append(errs, errors.New("timeout_secs must not be negative"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch c.UI.GlamourStyle {
	case "auto", "dark", "light", "notty":
	default:
		errs = append(errs, fmt.Errorf("ui.glamour_style: unknown style %q", c.UI.GlamourStyle))
	}
	return errors.Join(errs...)
}
