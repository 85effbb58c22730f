package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"ironrod/dash/internal/config"
)

// setupTestConfig points the config package at a temp file and returns its path.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// execConfig creates the config command, wires up output buffers, runs with the
// given args, and returns what was written to stdout and stderr.
func execConfig(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	_ = cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestSet_BaseURL(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "api-base-url", "https://gw.example.com")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"https://gw.example.com"`) {
		t.Errorf("expected confirmation with url, got: %s", stdout)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.APIBaseURL != "https://gw.example.com" {
		t.Errorf("expected APIBaseURL %q, got %q", "https://gw.example.com", cfg.APIBaseURL)
	}
}

func TestSet_InvalidValue(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "fetch-timeout", "later")

	if !strings.Contains(stderr, "invalid value for fetch-timeout") {
		t.Errorf("expected validation error, got: %s", stderr)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FetchTimeout != "" {
		t.Errorf("invalid value was saved: %q", cfg.FetchTimeout)
	}
}

func TestSet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "bogus-key", "value")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}

func TestSet_CurrencyUppercased(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "CURRENCY", "eur")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `currency set to "EUR"`) {
		t.Errorf("expected normalized currency, got: %s", stdout)
	}
}

func TestSet_ClearsKey(t *testing.T) {
	path := setupTestConfig(t)
	if err := (&config.Config{FetchTimeout: "9s"}).SaveTo(path); err != nil {
		t.Fatal(err)
	}

	stdout, _ := execConfig(t, "set", "fetch-timeout")
	if !strings.Contains(stdout, "fetch-timeout cleared") {
		t.Errorf("expected cleared message, got: %s", stdout)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FetchTimeout != "" {
		t.Errorf("expected empty FetchTimeout, got %q", cfg.FetchTimeout)
	}
}
