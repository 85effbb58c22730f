package dashboard

import (
	"errors"
	"testing"
	"time"

	"ironrod/dash/internal/domain"
	"ironrod/dash/internal/payload"

	"github.com/google/go-cmp/cmp"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func mustParse(t *testing.T, s string) domain.Value {
	t.Helper()
	v, err := payload.Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse(%s): %v", s, err)
	}
	return v
}

func linePanel() Panel {
	return NewPanel(PanelConfig{Title: "P&L", Kind: KindLine, Endpoint: "/api/qbo/pl", XKey: "date", DataKey: "total"})
}

func TestPanel_ApplySuccess(t *testing.T) {
	p := linePanel().Apply(domain.Success("u", mustParse(t, `[{"date":"2024-01","total":100},{"date":"2024-02","total":"150.5"}]`), t0))

	want := []domain.Point{{X: "2024-01", Y: 100}, {X: "2024-02", Y: 150.5}}
	if diff := cmp.Diff(want, p.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	if !p.Loaded || p.Stale() || p.Status() != "ok" {
		t.Errorf("unexpected state: loaded=%v stale=%v status=%q", p.Loaded, p.Stale(), p.Status())
	}
	if !p.UpdatedAt.Equal(t0) {
		t.Errorf("UpdatedAt = %v, want %v", p.UpdatedAt, t0)
	}
}

func TestPanel_FailuresKeepLastGoodData(t *testing.T) {
	p := linePanel().Apply(domain.Success("u", mustParse(t, `[{"date":"a","total":1},{"date":"b","total":2}]`), t0))
	before := p.Points

	timeout := domain.NewFetchError(domain.ErrTimeout, "u", nil)
	for i := 1; i <= 3; i++ {
		p = p.Apply(domain.Failure("u", timeout, t0.Add(time.Duration(i)*time.Second)))
	}

	if diff := cmp.Diff(before, p.Points); diff != "" {
		t.Errorf("points changed after failures (-want +got):\n%s", diff)
	}
	if !p.Stale() || p.Failures != 3 {
		t.Errorf("expected stale with 3 failures, got stale=%v failures=%d", p.Stale(), p.Failures)
	}
	if !p.UpdatedAt.Equal(t0) {
		t.Errorf("UpdatedAt moved to %v", p.UpdatedAt)
	}
	if !p.CheckedAt.Equal(t0.Add(3 * time.Second)) {
		t.Errorf("CheckedAt = %v", p.CheckedAt)
	}

	p = p.Apply(domain.Success("u", mustParse(t, `[{"date":"c","total":3}]`), t0.Add(time.Minute)))
	if p.Stale() || p.Failures != 0 || len(p.Points) != 1 {
		t.Errorf("success did not clear failure state: %+v", p)
	}
}

func TestPanel_ShapeMismatchIsParseFailure(t *testing.T) {
	p := linePanel().Apply(domain.Success("u", mustParse(t, `[{"date":"a","total":1}]`), t0))
	p = p.Apply(domain.Success("u", mustParse(t, `{"rows":[]}`), t0.Add(time.Second)))

	if !errors.Is(p.LastErr, domain.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", p.LastErr)
	}
	if len(p.Points) != 1 {
		t.Errorf("stale points dropped: %+v", p.Points)
	}
}

func TestPanel_Root(t *testing.T) {
	p := NewPanel(PanelConfig{Kind: KindBar, Endpoint: "/bs", XKey: "account", DataKey: "amount", Root: "$.rows"})
	p = p.Apply(domain.Success("u", mustParse(t, `{"rows":[{"account":"Cash","amount":-20}]}`), t0))

	want := []domain.Point{{X: "Cash", Y: -20}}
	if diff := cmp.Diff(want, p.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestPanel_Scorecard(t *testing.T) {
	p := NewPanel(PanelConfig{Kind: KindScorecard, Endpoint: "/sc"})
	p = p.Apply(domain.Success("u", mustParse(t, `{"dates":["W1","W2"],"metrics":[{"rev":10},{"rev":12,"cost":3}]}`), t0))

	if !p.Loaded {
		t.Fatalf("scorecard not loaded: %v", p.LastErr)
	}
	if diff := cmp.Diff([]string{"W1", "W2"}, p.Snapshot.Dates); diff != "" {
		t.Errorf("dates mismatch (-want +got):\n%s", diff)
	}

	p = p.Apply(domain.Success("u", mustParse(t, `{"dates":["W1"]}`), t0.Add(time.Second)))
	if !p.Stale() || len(p.Snapshot.Dates) != 2 {
		t.Errorf("bad scorecard payload should leave previous snapshot: %+v", p)
	}
}

func TestPanel_Status(t *testing.T) {
	p := linePanel()
	if got := p.Status(); got != "loading" {
		t.Errorf("Status = %q, want loading", got)
	}
	p = p.Apply(domain.Failure("u", domain.NewFetchError(domain.ErrTimeout, "u", nil), t0))
	if got := p.Status(); got != "error: timeout" {
		t.Errorf("Status = %q, want error: timeout", got)
	}
}

func TestPanel_Report(t *testing.T) {
	p := linePanel().Apply(domain.Success("u", mustParse(t, `[{"date":"a","total":1}]`), t0))
	p = p.Apply(domain.Failure("u", domain.NewFetchError(domain.ErrTimeout, "u", nil), t0.Add(time.Second)))

	r := p.Report()
	if r.Status != "stale" || r.Error != "timeout" || r.UpdatedAt == nil || !r.UpdatedAt.Equal(t0) {
		t.Errorf("unexpected report: %+v", r)
	}
	if diff := cmp.Diff([]domain.Point{{X: "a", Y: 1}}, r.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}

	sc := NewPanel(PanelConfig{Title: "Weekly", Kind: KindScorecard, Endpoint: "/sc"})
	sc = sc.Apply(domain.Success("u", mustParse(t, `{"dates":["W1","W2"],"metrics":[{"rev":10},{"rev":12,"cost":3}]}`), t0))
	want := &ScorecardReport{Date: "W2", Metrics: []MetricReport{{Name: "rev", Value: float64(12)}, {Name: "cost", Value: float64(3)}}}
	if diff := cmp.Diff(want, sc.Report().Scorecard); diff != "" {
		t.Errorf("scorecard mismatch (-want +got):\n%s", diff)
	}

	if r := linePanel().Report(); r.Status != "loading" || r.Points != nil {
		t.Errorf("unexpected loading report: %+v", r)
	}
}
