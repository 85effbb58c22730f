package config

import (
	"strings"
	"testing"

	"ironrod/dash/internal/config"
)

func TestGet_ShowsDefault(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "get", "fetch-timeout")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "5s (default)") {
		t.Errorf("expected default value, got: %s", stdout)
	}
}

func TestGet_NotSet(t *testing.T) {
	setupTestConfig(t)

	stdout, _ := execConfig(t, "get", "--key", "layout-file")

	if !strings.Contains(stdout, "not set") {
		t.Errorf("expected 'not set', got: %s", stdout)
	}
}

func TestGet_Set(t *testing.T) {
	path := setupTestConfig(t)

	cfg := &config.Config{APIBaseURL: "https://gw.example.com"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, stderr := execConfig(t, "get", "api-base-url")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "https://gw.example.com") {
		t.Errorf("expected stored url, got: %s", stdout)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "get", "bogus-key")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}

func TestGet_ListsAllKeysOffTerminal(t *testing.T) {
	setupTestConfig(t)

	stdout, _ := execConfig(t, "get")

	for _, name := range config.KeyNames() {
		if !strings.Contains(stdout, name+":") {
			t.Errorf("expected %q in listing:\n%s", name, stdout)
		}
	}
}
