package dashboard

import (
	"errors"
	"time"

	"ironrod/dash/internal/domain"
	"ironrod/dash/internal/scorecard"
)

// PanelReport is the machine-readable form of a panel's state.
type PanelReport struct {
	Title     string           `json:"title"`
	Kind      PanelKind        `json:"kind"`
	Endpoint  string           `json:"endpoint"`
	Status    string           `json:"status"`
	Error     string           `json:"error,omitempty"`
	UpdatedAt *time.Time       `json:"updatedAt,omitempty"`
	Points    []domain.Point   `json:"points,omitempty"`
	Scorecard *ScorecardReport `json:"scorecard,omitempty"`
}

// ScorecardReport is the latest period of a scorecard panel.
type ScorecardReport struct {
	Date    string         `json:"date"`
	Metrics []MetricReport `json:"metrics"`
}

// MetricReport is one metric of a scorecard period.
type MetricReport struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Report describes p for structured output.
func (p Panel) Report() PanelReport {
	r := PanelReport{
		Title:    p.Config.Name(),
		Kind:     p.Config.Kind,
		Endpoint: p.Config.Endpoint,
		Status:   "ok",
	}
	switch {
	case !p.Loaded && p.LastErr == nil:
		r.Status = "loading"
	case !p.Loaded:
		r.Status = "error"
	case p.LastErr != nil:
		r.Status = "stale"
	}
	if p.LastErr != nil {
		r.Error = p.LastErr.Error()
	}
	if !p.Loaded {
		return r
	}

	at := p.UpdatedAt
	r.UpdatedAt = &at
	if p.Config.Kind != KindScorecard {
		r.Points = p.Points
		if r.Points == nil {
			r.Points = []domain.Point{}
		}
		return r
	}

	date, entries, err := scorecard.Latest(p.Snapshot)
	if errors.Is(err, domain.ErrEmptyScorecard) {
		return r
	}
	sc := &ScorecardReport{Date: date, Metrics: make([]MetricReport, len(entries))}
	for i, e := range entries {
		sc.Metrics[i] = MetricReport{Name: e.Name, Value: e.Value.Interface()}
	}
	r.Scorecard = sc
	return r
}
