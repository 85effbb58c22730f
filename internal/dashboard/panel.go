package dashboard

import (
	"fmt"
	"time"

	"ironrod/dash/internal/domain"
	"ironrod/dash/internal/payload"
	"ironrod/dash/internal/scorecard"
	"ironrod/dash/internal/series"
)

// Panel is the display state of one dashboard panel. It is a value type:
// Apply returns the next state and leaves the receiver untouched.
//
// Panels follow stale-while-revalidate: a failure is recorded but never
// clears data from an earlier success.
type Panel struct {
	Config PanelConfig

	// Loaded is true once any success has been applied.
	Loaded   bool
	Points   []domain.Point
	Snapshot domain.Snapshot

	LastErr   error
	Failures  int // consecutive failures since the last success
	UpdatedAt time.Time
	CheckedAt time.Time
}

// NewPanel returns the initial, not-yet-loaded state for cfg.
func NewPanel(cfg PanelConfig) Panel {
	return Panel{Config: cfg}
}

// Apply folds a delivered result into the panel.
func (p Panel) Apply(res domain.FetchResult) Panel {
	p.CheckedAt = res.FetchedAt
	if !res.OK() {
		return p.fail(res.Err)
	}

	switch p.Config.Kind {
	case KindScorecard:
		snap, err := scorecard.Decode(res.Body)
		if err != nil {
			return p.fail(domain.NewFetchError(domain.ErrParse, res.URL, err))
		}
		p.Snapshot = snap
	default:
		records, err := payload.Records(res.Body, p.Config.Root)
		if err != nil {
			return p.fail(domain.NewFetchError(domain.ErrParse, res.URL, err))
		}
		p.Points = series.Normalize(records, p.Config.XKey, p.Config.DataKey)
	}

	p.Loaded = true
	p.LastErr = nil
	p.Failures = 0
	p.UpdatedAt = res.FetchedAt
	return p
}

func (p Panel) fail(err error) Panel {
	p.LastErr = err
	p.Failures++
	return p
}

// Stale reports whether the panel is showing data from before its most
// recent failure.
func (p Panel) Stale() bool { return p.Loaded && p.LastErr != nil }

// Status is a short human-readable summary of the panel's fetch state.
func (p Panel) Status() string {
	switch {
	case !p.Loaded && p.LastErr == nil:
		return "loading"
	case !p.Loaded:
		return fmt.Sprintf("error: %v", p.LastErr)
	case p.LastErr != nil:
		return fmt.Sprintf("stale (%v, %d failed)", p.LastErr, p.Failures)
	default:
		return "ok"
	}
}
