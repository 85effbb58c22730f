// Package render draws normalized series and scorecards as terminal text.
// Renderers are pure: the same input always yields the same output, and
// nothing here fetches or keeps state between calls.
package render

import (
	"strings"

	"ironrod/dash/internal/domain"
	"ironrod/dash/internal/series"
	"ironrod/dash/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	defaultWidth  = 60
	defaultHeight = 8

	minPlotWidth  = 10
	minPlotHeight = 3
)

// Hints carries display options shared by every chart variant.
type Hints struct {
	XLabel       string
	YLabel       string
	Currency     bool
	CurrencyCode string
	Width        int
	Height       int
}

func (h Hints) width() int {
	if h.Width <= 0 {
		return defaultWidth
	}
	return max(h.Width, minPlotWidth+9)
}

func (h Hints) height() int {
	if h.Height <= 0 {
		return defaultHeight
	}
	return max(h.Height, minPlotHeight)
}

// Chart draws points as the given chart kind. An empty series draws an
// empty frame. Unknown kinds fall back to a line chart.
func Chart(kind domain.ChartKind, points []domain.Point, h Hints) string {
	if len(points) == 0 {
		return EmptyFrame(h)
	}

	var body string
	switch kind {
	case domain.ChartBar:
		body = barChart(points, h)
	default:
		body = lineChart(points, h)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, summary(points, h))
}

// summary renders the latest, minimum and maximum values.
func summary(points []domain.Point, h Hints) string {
	lo, hi := series.Bounds(points)
	cur := points[len(points)-1].Y
	line := "  cur: " + h.Format(cur) + "  min: " + h.Format(lo) + "  max: " + h.Format(hi)
	return styles.MutedText.Render(ansi.Truncate(line, h.width(), "…"))
}

// xAxisLabels renders the first and last x values under a plot, with the
// axis name centred between them when it fits.
func xAxisLabels(points []domain.Point, h Hints, offset int) string {
	width := h.width() - offset
	first := points[0].XLabel()
	last := points[len(points)-1].XLabel()
	if len(points) == 1 {
		last = ""
	}

	first = ansi.Truncate(first, width/2-1, "…")
	last = ansi.Truncate(last, width/2-1, "…")

	gap := width - ansi.StringWidth(first) - ansi.StringWidth(last)
	middle := strings.Repeat(" ", max(gap, 1))
	if name := h.XLabel; name != "" && ansi.StringWidth(name)+2 <= gap {
		pad := gap - ansi.StringWidth(name)
		middle = strings.Repeat(" ", pad/2) + name + strings.Repeat(" ", pad-pad/2)
	}

	return styles.MutedText.Render(strings.Repeat(" ", offset) + first + middle + last)
}
