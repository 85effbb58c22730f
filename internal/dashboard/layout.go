// Package dashboard composes independent panels, each backed by its own
// poller, into one view.
package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"ironrod/dash/internal/domain"

	"gopkg.in/yaml.v3"
)

// PanelKind selects how a panel draws its data.
type PanelKind string

const (
	KindLine      PanelKind = "line"
	KindBar       PanelKind = "bar"
	KindScorecard PanelKind = "scorecard"
)

// Chart reports whether the kind is drawn by the chart renderer.
func (k PanelKind) Chart() bool { return k == KindLine || k == KindBar }

// ChartKind maps a chart panel kind onto the renderer's variant.
func (k PanelKind) ChartKind() domain.ChartKind {
	if k == KindBar {
		return domain.ChartBar
	}
	return domain.ChartLine
}

// PanelConfig is the per-panel configuration surface.
type PanelConfig struct {
	Title          string    `yaml:"title"`
	Kind           PanelKind `yaml:"kind"`
	Endpoint       string    `yaml:"endpoint"`
	XKey           string    `yaml:"xKey,omitempty"`
	DataKey        string    `yaml:"dataKey,omitempty"`
	PollIntervalMs *int      `yaml:"pollIntervalMs,omitempty"`
	Root           string    `yaml:"root,omitempty"`
	Currency       bool      `yaml:"currency,omitempty"`
}

// Name returns the panel title, falling back to its endpoint.
func (p PanelConfig) Name() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Endpoint
}

// Validate checks a single panel's configuration.
func (p PanelConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Endpoint) == "" {
		errs = append(errs, errors.New("endpoint is required"))
	}
	switch p.Kind {
	case KindLine, KindBar:
		if p.XKey == "" {
			errs = append(errs, errors.New("xKey is required for chart panels"))
		}
		if p.DataKey == "" {
			errs = append(errs, errors.New("dataKey is required for chart panels"))
		}
	case KindScorecard:
	default:
		errs = append(errs, fmt.Errorf("unknown kind %q (valid: line, bar, scorecard)", p.Kind))
	}
	if p.PollIntervalMs != nil && *p.PollIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("pollIntervalMs must be a positive integer, got %d", *p.PollIntervalMs))
	}
	return errors.Join(errs...)
}

// Resolve builds the poller descriptor, resolving a relative endpoint
// against base.
func (p PanelConfig) Resolve(base string) (domain.Endpoint, error) {
	ref, err := url.Parse(strings.TrimSpace(p.Endpoint))
	if err != nil {
		return domain.Endpoint{}, fmt.Errorf("%w: %q: %v", domain.ErrInvalidEndpoint, p.Endpoint, err)
	}

	if !ref.IsAbs() {
		if base == "" {
			return domain.Endpoint{}, fmt.Errorf("%w: %q is relative and no api base url is set", domain.ErrInvalidEndpoint, p.Endpoint)
		}
		b, err := url.Parse(base)
		if err != nil || !b.IsAbs() {
			return domain.Endpoint{}, fmt.Errorf("%w: api base url %q is not absolute", domain.ErrInvalidEndpoint, base)
		}
		ref = b.ResolveReference(ref)
	}

	ep := domain.Endpoint{URL: ref.String()}
	if p.PollIntervalMs != nil {
		ep.PollInterval = domain.EveryMillis(*p.PollIntervalMs)
	}
	return ep, ep.Validate()
}

// Layout is a dashboard: a title and its panels, top to bottom.
type Layout struct {
	Title  string        `yaml:"title"`
	Panels []PanelConfig `yaml:"panels"`
}

// Validate checks every panel, reporting all problems at once.
func (l Layout) Validate() error {
	if len(l.Panels) == 0 {
		return errors.New("layout: no panels defined")
	}
	var errs []error
	for i, p := range l.Panels {
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("layout: panel %d (%s): %w", i+1, p.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Filter returns a layout holding only the panels for which keep is true.
func (l Layout) Filter(keep func(PanelConfig) bool) Layout {
	out := Layout{Title: l.Title}
	for _, p := range l.Panels {
		if keep(p) {
			out.Panels = append(out.Panels, p)
		}
	}
	return out
}

// ParseLayout decodes and validates a YAML layout. Unknown keys are
// rejected so typos like "datakey" do not silently produce empty charts.
func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("layout: failed to parse: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// LoadLayout reads a layout file. An empty path yields DefaultLayout.
func LoadLayout(path string) (Layout, error) {
	if path == "" {
		return DefaultLayout(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("layout: failed to read %s: %w", path, err)
	}
	return ParseLayout(data)
}

// DefaultLayout is the built-in accounting dashboard.
func DefaultLayout() Layout {
	revenueInterval := 30_000
	return Layout{
		Title: "Ironrod Dashboard",
		Panels: []PanelConfig{
			{Title: "Profit & Loss", Kind: KindLine, Endpoint: "/api/qbo/pl", XKey: "date", DataKey: "total", Currency: true},
			{Title: "Balance Sheet", Kind: KindBar, Endpoint: "/api/qbo/bs", XKey: "account", DataKey: "total", Currency: true},
			{Title: "Daily Revenue", Kind: KindLine, Endpoint: "/api/qbo/realtime/revenue", XKey: "timestamp", DataKey: "value", PollIntervalMs: &revenueInterval, Currency: true},
			{Title: "Mentor Weekly Scorecard", Kind: KindScorecard, Endpoint: "/api/qbo/scorecard/weekly"},
		},
	}
}

// Marshal renders the layout as YAML, e.g. to seed a layout file.
func (l Layout) Marshal() ([]byte, error) {
	return yaml.Marshal(l)
}
