// Package config handles persistent user configuration for staffdesk.
//
// Configuration is stored as JSON at ~/.config/staffdesk/config.json (or the
// platform-equivalent path returned by os.UserConfigDir). Environment
// variables, optionally loaded from a .env file, override file values for
// the current process only.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	appDir   = "staffdesk"
	fileName = "config.json"

	// DefaultAPIURL is used when neither the config file nor the
	// environment names an API.
	DefaultAPIURL = "http://localhost:3000/api"

	EnvAPIURL   = "STAFFDESK_API_URL"
	EnvLogLevel = "STAFFDESK_LOG_LEVEL"
)

// pathOverride, when non-empty, replaces the default config file path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override, reverting to the default. Intended for testing.
func ResetPath() { pathOverride = "" }

// Config holds user preferences that persist across invocations.
type Config struct {
	APIURL   string `json:"api_url,omitempty"`
	Theme    string `json:"theme,omitempty"`
	LogLevel string `json:"log_level,omitempty"`
}

// Path returns the absolute path to the config file.
// If SetPath has been called, that value is returned instead.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads the config file from disk and returns the parsed Config.
// If the file does not exist, a zero-value Config is returned (not an error).
func Load() (*Config, error) {
	return loadFrom("")
}

func loadFrom(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the parent directory if needed.
func (c *Config) Save() error {
	return c.saveTo("")
}

func (c *Config) saveTo(path string) error {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}

	return nil
}

// LoadFrom reads the config from the given path. Intended for testing.
func LoadFrom(path string) (*Config, error) {
	return loadFrom(path)
}

// SaveTo writes the config to the given path. Intended for testing.
func (c *Config) SaveTo(path string) error {
	return c.saveTo(path)
}

// LoadEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// Runtime is the effective configuration for one process: file values
// overlaid by the environment.
type Runtime struct {
	APIURL   string
	LogLevel string
}

// Resolve merges cfg with the environment and applies defaults.
func Resolve(cfg *Config) Runtime {
	if cfg == nil {
		cfg = &Config{}
	}
	rt := Runtime{
		APIURL:   pick(os.Getenv(EnvAPIURL), cfg.APIURL, DefaultAPIURL),
		LogLevel: pick(os.Getenv(EnvLogLevel), cfg.LogLevel, "info"),
	}
	rt.APIURL = strings.TrimRight(rt.APIURL, "/")
	return rt
}

func pick(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
