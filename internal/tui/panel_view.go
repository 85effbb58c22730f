package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ironrod/dash/internal/dashboard"
	"ironrod/dash/internal/domain"
	"ironrod/dash/internal/render"
	"ironrod/dash/internal/scorecard"
	"ironrod/dash/internal/tui/components"
	"ironrod/dash/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// PanelView controls how panels are drawn.
type PanelView struct {
	Width    int
	Height   int // chart plot height; zero uses the renderer default
	Currency string
	History  bool // draw scorecards as the full multi-period table
	Now      time.Time
}

func panelState(p dashboard.Panel) styles.PanelState {
	switch {
	case !p.Loaded && p.LastErr == nil:
		return styles.StateLoading
	case !p.Loaded:
		return styles.StateError
	case p.LastErr != nil:
		return styles.StateStale
	default:
		return styles.StateLive
	}
}

// RenderPanel draws one panel as a card. Data from the last success stays
// on screen after a failure; the failure shows as a note under it.
func RenderPanel(p dashboard.Panel, v PanelView, active bool) string {
	inner := components.CardInnerWidth(v.Width)
	badge := styles.StatusIndicator(panelState(p))
	return components.PanelCard(v.Width, p.Config.Name(), badge, panelBody(p, v, inner), panelNote(p, v), active)
}

func panelBody(p dashboard.Panel, v PanelView, width int) string {
	hints := render.Hints{
		XLabel:       p.Config.XKey,
		YLabel:       p.Config.DataKey,
		Currency:     p.Config.Currency,
		CurrencyCode: v.Currency,
		Width:        width,
		Height:       v.Height,
	}

	if !p.Loaded {
		if p.Config.Kind.Chart() {
			return render.EmptyFrame(hints)
		}
		return styles.MutedText.Render("Loading scorecard…")
	}

	if p.Config.Kind == dashboard.KindScorecard {
		return scorecardBody(p.Snapshot, hints, v.History)
	}
	return render.Chart(p.Config.Kind.ChartKind(), p.Points, hints)
}

func scorecardBody(s domain.Snapshot, h render.Hints, history bool) string {
	if history {
		cols, rows, err := scorecard.History(s)
		if errors.Is(err, domain.ErrEmptyScorecard) {
			return styles.MutedText.Render("No scorecard data yet.")
		}
		return render.HistoryTable(cols, rows, h)
	}

	date, entries, err := scorecard.Latest(s)
	if errors.Is(err, domain.ErrEmptyScorecard) {
		return styles.MutedText.Render("No scorecard data yet.")
	}
	heading := styles.Label.Render("Week of ") + styles.Value.Render(date)
	return lipgloss.JoinVertical(lipgloss.Left, heading, "", render.LatestTable(entries, h))
}

func panelNote(p dashboard.Panel, v PanelView) string {
	var parts []string
	if p.LastErr != nil {
		msg := "refresh failed: " + p.LastErr.Error()
		if p.Failures > 1 {
			msg += fmt.Sprintf(" (%d in a row)", p.Failures)
		}
		style := styles.WarningText
		if !p.Loaded {
			style = styles.ErrorText
		}
		parts = append(parts, style.Render("⚠ "+msg))
	}
	if p.Loaded {
		parts = append(parts, styles.MutedText.Render("updated "+relTime(p.UpdatedAt, v.Now)))
	}
	return strings.Join(parts, styles.MutedText.Render("  ·  "))
}

func relTime(then, now time.Time) string {
	if now.IsZero() {
		now = time.Now()
	}
	if now.Sub(then) < time.Second {
		return "just now"
	}
	return humanize.RelTime(then, now, "ago", "from now")
}

// RenderPanels draws every panel stacked vertically, for non-interactive
// output.
func RenderPanels(title string, panels []dashboard.Panel, v PanelView) string {
	cards := make([]string, 0, len(panels)+1)
	if title != "" {
		cards = append(cards, styles.Title.Render(title))
	}
	for _, p := range panels {
		cards = append(cards, RenderPanel(p, v, false))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
