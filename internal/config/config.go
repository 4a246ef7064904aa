// Package config handles XDG configuration directory and API environment selection.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the application directory name.
	AppName = "taskflow"

	// SessionDBFile is the durable session database filename.
	SessionDBFile = "session.db"

	// EnvAPIURL overrides the API base URL when set.
	EnvAPIURL = "TASKFLOW_API_URL"
)

// Named API environments, matching the backend's deployments.
var environments = map[string]string{
	"local":      "http://localhost:8081",
	"docker":     "http://localhost:8081",
	"production": "http://localhost:8080",
}

// DefaultEnvironment is used when neither --api nor TASKFLOW_API_URL is given.
const DefaultEnvironment = "local"

// Validation limits enforced by the backend.
const (
	// TitleMaxLen is the maximum todo title length in runes.
	TitleMaxLen = 100

	// DescriptionMaxLen is the maximum todo description length in runes.
	DescriptionMaxLen = 1000

	// PasswordMinLen is the minimum password length.
	PasswordMinLen = 8
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the resolved API base URL.
	BaseURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config with the default or specified config directory and
// API target. api may be a named environment ("local", "production") or a
// full URL; empty falls back to TASKFLOW_API_URL, then the default.
func New(configDir, api string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	base, err := resolveBaseURL(api)
	if err != nil {
		return nil, err
	}
	return &Config{Dir: dir, BaseURL: base}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func resolveBaseURL(api string) (string, error) {
	if api == "" {
		api = os.Getenv(EnvAPIURL)
	}
	if api == "" {
		api = DefaultEnvironment
	}
	if url, ok := environments[strings.ToLower(api)]; ok {
		return url, nil
	}
	if strings.HasPrefix(api, "http://") || strings.HasPrefix(api, "https://") {
		return strings.TrimRight(api, "/"), nil
	}
	return "", fmt.Errorf("unknown API environment: %s", api)
}

// SessionDBPath returns the path to the durable session database.
func (c *Config) SessionDBPath() string {
	return filepath.Join(c.Dir, SessionDBFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
