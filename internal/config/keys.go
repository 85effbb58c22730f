package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"ironrod/dash/internal/util"

	"github.com/Rhymond/go-money"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "api-base-url").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Default is shown when the key is unset.
	Default string

	// Hint describes the accepted format; editors show it next to the input.
	Hint string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Validate rejects malformed values before they are stored. An empty
	// value always clears the key and is not validated.
	Validate func(value string) error
}

// Apply validates value and stores it on cfg.
func (k KeySpec) Apply(cfg *Config, value string) error {
	value = strings.TrimSpace(value)
	if value != "" && k.Validate != nil {
		if err := k.Validate(value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", k.Name, err)
		}
	}
	k.Set(cfg, value)
	return nil
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "api-base-url",
		Description: "Gateway URL that relative panel endpoints resolve against",
		Default:     DefaultAPIBaseURL,
		Hint:        "http(s)://host[:port][/prefix]",
		Get:         func(cfg *Config) string { return cfg.APIBaseURL },
		Set:         func(cfg *Config, v string) { cfg.APIBaseURL = v },
		Validate:    validateBaseURL,
	},
	{
		Name:        "fetch-timeout",
		Description: "Bounded wait for a single fetch (e.g. 5s, 1500ms)",
		Default:     DefaultFetchTimeout.String(),
		Hint:        "positive Go duration: 800ms, 5s, 1m",
		Get:         func(cfg *Config) string { return cfg.FetchTimeout },
		Set:         func(cfg *Config, v string) { cfg.FetchTimeout = v },
		Validate: func(v string) error {
			_, err := parseTimeout(v)
			return err
		},
	},
	{
		Name:        "layout-file",
		Description: "YAML dashboard layout; unset uses the built-in layout",
		Hint:        "path to an existing layout file",
		Get:         func(cfg *Config) string { return cfg.LayoutFile },
		Set:         func(cfg *Config, v string) { cfg.LayoutFile = v },
		Validate:    validateFile,
	},
	{
		Name:        "currency",
		Description: "ISO 4217 code used to format currency panels",
		Default:     DefaultCurrency,
		Hint:        "three-letter code: USD, EUR, GBP",
		Get:         func(cfg *Config) string { return cfg.Currency },
		Set:         func(cfg *Config, v string) { cfg.Currency = strings.ToUpper(v) },
		Validate:    validateCurrency,
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// Names are compared after util.NormalizeKey, so "API_BASE_URL" finds
// api-base-url.
func Lookup(name string) *KeySpec {
	normalized := util.NormalizeKey(name)
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s", maxLen, k.Name, k.Description)
		if k.Default != "" {
			fmt.Fprintf(&b, " (default %s)", k.Default)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func validateBaseURL(v string) error {
	u, err := url.Parse(v)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must be an http or https URL", v)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", v)
	}
	return nil
}

func parseTimeout(v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", v)
	}
	return d, nil
}

func validateFile(v string) error {
	info, err := os.Stat(v)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return errors.New(v + " is a directory")
	}
	return nil
}

func validateCurrency(v string) error {
	if money.GetCurrency(strings.ToUpper(v)) == nil {
		return fmt.Errorf("unknown currency code %q", v)
	}
	return nil
}
