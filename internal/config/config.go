// Package config handles persistent user configuration for ironrod.
//
// Configuration is stored as JSON at ~/.config/ironrod/config.json (or the
// platform-equivalent path returned by os.UserConfigDir).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	appDir   = "ironrod"
	fileName = "config.json"
)

// Defaults applied when a key is unset.
const (
	DefaultAPIBaseURL   = "http://localhost:8001"
	DefaultFetchTimeout = 5 * time.Second
	DefaultCurrency     = "USD"
)

// pathOverride, when non-empty, replaces the default config file path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override, reverting to the default. Intended for testing.
func ResetPath() { pathOverride = "" }

// Config holds user preferences that persist across invocations. Values
// are stored as entered; Resolve applies defaults and parses them.
type Config struct {
	APIBaseURL   string `json:"api_base_url,omitempty"`
	FetchTimeout string `json:"fetch_timeout,omitempty"`
	LayoutFile   string `json:"layout_file,omitempty"`
	Currency     string `json:"currency,omitempty"`
}

// Settings is the effective configuration for one run.
type Settings struct {
	APIBaseURL   string
	FetchTimeout time.Duration
	LayoutFile   string
	Currency     string
}

// Overrides carries command-line flag values. Empty fields leave the
// stored value in place.
type Overrides struct {
	APIBaseURL   string
	FetchTimeout time.Duration
	LayoutFile   string
}

// Resolve merges stored values, flag overrides and defaults, validating
// the result.
func (c *Config) Resolve(o Overrides) (Settings, error) {
	s := Settings{
		APIBaseURL:   firstNonEmpty(o.APIBaseURL, c.APIBaseURL, DefaultAPIBaseURL),
		FetchTimeout: DefaultFetchTimeout,
		LayoutFile:   firstNonEmpty(o.LayoutFile, c.LayoutFile),
		Currency:     strings.ToUpper(firstNonEmpty(c.Currency, DefaultCurrency)),
	}

	if err := validateBaseURL(s.APIBaseURL); err != nil {
		return Settings{}, fmt.Errorf("config: api-base-url: %w", err)
	}

	switch {
	case o.FetchTimeout > 0:
		s.FetchTimeout = o.FetchTimeout
	case o.FetchTimeout < 0:
		return Settings{}, fmt.Errorf("config: fetch-timeout must be positive, got %s", o.FetchTimeout)
	case c.FetchTimeout != "":
		d, err := parseTimeout(c.FetchTimeout)
		if err != nil {
			return Settings{}, fmt.Errorf("config: fetch-timeout: %w", err)
		}
		s.FetchTimeout = d
	}

	if err := validateCurrency(s.Currency); err != nil {
		return Settings{}, fmt.Errorf("config: currency: %w", err)
	}
	return s, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
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
