package tui

import (
	"strings"
	"testing"
	"time"

	"ironrod/dash/internal/dashboard"
	"ironrod/dash/internal/domain"
	"ironrod/dash/internal/payload"

	"github.com/charmbracelet/x/ansi"
)

var now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func loadedPanel(t *testing.T, cfg dashboard.PanelConfig, body string, at time.Time) dashboard.Panel {
	t.Helper()
	v, err := payload.Parse([]byte(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p := dashboard.NewPanel(cfg).Apply(domain.Success(cfg.Endpoint, v, at))
	if !p.Loaded {
		t.Fatalf("panel did not load: %v", p.LastErr)
	}
	return p
}

var plConfig = dashboard.PanelConfig{Title: "Profit & Loss", Kind: dashboard.KindLine, Endpoint: "/pl", XKey: "date", DataKey: "total", Currency: true}

var scorecardConfig = dashboard.PanelConfig{Title: "Weekly", Kind: dashboard.KindScorecard, Endpoint: "/sc"}

func TestRenderPanel_Loading(t *testing.T) {
	out := ansi.Strip(RenderPanel(dashboard.NewPanel(plConfig), PanelView{Width: 80, Now: now}, false))

	for _, want := range []string{"Profit & Loss", "loading", "no data"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestRenderPanel_StaleKeepsChart(t *testing.T) {
	p := loadedPanel(t, plConfig, `[{"date":"2024-01","total":1200},{"date":"2024-02","total":900}]`, now.Add(-2*time.Minute))
	fresh := ansi.Strip(RenderPanel(p, PanelView{Width: 80, Now: now}, false))

	timeout := domain.NewFetchError(domain.ErrTimeout, "/pl", nil)
	p = p.Apply(domain.Failure("/pl", timeout, now))
	p = p.Apply(domain.Failure("/pl", timeout, now))
	stale := ansi.Strip(RenderPanel(p, PanelView{Width: 80, Now: now}, false))

	for _, want := range []string{"stale", "refresh failed: timeout (2 in a row)", "updated 2 minutes ago", "$1,200.00"} {
		if !strings.Contains(stale, want) {
			t.Errorf("expected %q in:\n%s", want, stale)
		}
	}
	if !strings.Contains(fresh, "live") || !strings.Contains(fresh, "$1,200.00") {
		t.Errorf("fresh panel missing data:\n%s", fresh)
	}
}

func TestRenderPanel_ErrorBeforeFirstSuccess(t *testing.T) {
	p := dashboard.NewPanel(plConfig).Apply(domain.Failure("/pl", &domain.FetchError{Kind: domain.ErrHTTPStatus, Status: 502}, now))
	out := ansi.Strip(RenderPanel(p, PanelView{Width: 80, Now: now}, false))

	for _, want := range []string{"error", "refresh failed: HTTP 502", "no data"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "updated") {
		t.Errorf("never-loaded panel should not show an update time:\n%s", out)
	}
}

func TestRenderPanel_Scorecard(t *testing.T) {
	p := loadedPanel(t, scorecardConfig, `{"dates":["W1","W2"],"metrics":[{"rev":10},{"rev":12,"cost":3}]}`, now)

	latest := ansi.Strip(RenderPanel(p, PanelView{Width: 80, Now: now}, false))
	for _, want := range []string{"Week of W2", "rev", "12", "cost", "just now"} {
		if !strings.Contains(latest, want) {
			t.Errorf("expected %q in latest view:\n%s", want, latest)
		}
	}

	history := ansi.Strip(RenderPanel(p, PanelView{Width: 80, Now: now, History: true}, false))
	for _, want := range []string{"Week Of", "W1", "W2", "cost"} {
		if !strings.Contains(history, want) {
			t.Errorf("expected %q in history view:\n%s", want, history)
		}
	}
}

func TestRenderPanel_EmptyScorecard(t *testing.T) {
	p := loadedPanel(t, scorecardConfig, `{"dates":[],"metrics":[]}`, now)
	out := ansi.Strip(RenderPanel(p, PanelView{Width: 80, Now: now}, false))
	if !strings.Contains(out, "No scorecard data yet.") {
		t.Errorf("expected empty-state message:\n%s", out)
	}
}

func TestRenderPanels_Title(t *testing.T) {
	out := ansi.Strip(RenderPanels("Ironrod", []dashboard.Panel{dashboard.NewPanel(plConfig), dashboard.NewPanel(scorecardConfig)}, PanelView{Width: 80, Now: now}))
	for _, want := range []string{"Ironrod", "Profit & Loss", "Weekly"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func parseBody(s string) (domain.Value, error) {
	return payload.Parse([]byte(s))
}
