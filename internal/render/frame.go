package render

import (
	"strings"

	"ironrod/dash/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// EmptyFrame draws axes with no data: a y-axis, an x-axis and a muted
// "no data" note. It is what every chart kind shows for an empty series.
func EmptyFrame(h Hints) string {
	width, height := h.width(), h.height()
	axis := lipgloss.NewStyle().Foreground(styles.DimGray)

	note := "no data"
	if h.YLabel != "" {
		note = h.YLabel + ": no data"
	}

	rows := make([]string, 0, height+2)
	for i := range height {
		line := axis.Render("        │")
		if i == height/2 {
			line += " " + styles.MutedText.Render(note)
		}
		rows = append(rows, line)
	}
	rows = append(rows, axis.Render("      0 ┼"+strings.Repeat("─", max(width-yAxisWidth, minPlotWidth))))
	if h.XLabel != "" {
		rows = append(rows, styles.MutedText.Render(strings.Repeat(" ", yAxisWidth)+h.XLabel))
	}
	return strings.Join(rows, "\n")
}
