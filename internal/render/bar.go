package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ironrod/dash/internal/domain"
	"ironrod/dash/internal/tui/styles"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	barStyle      = lipgloss.NewStyle().Foreground(styles.SeriesPositive)
	negativeStyle = lipgloss.NewStyle().Foreground(styles.SeriesNegative)
	axisStyle     = lipgloss.NewStyle().Foreground(styles.DimGray)
	labelStyle    = lipgloss.NewStyle().Foreground(styles.Gray)
)

// barChart draws one bar per point. Bars are labelled by index and a
// legend maps each index to its x value, since account names rarely fit
// under a bar. Negative values are drawn by magnitude in the negative
// colour; the legend keeps the sign.
func barChart(points []domain.Point, h Hints) string {
	data := make([]barchart.BarData, len(points))
	for i, p := range points {
		style := barStyle
		if p.Y < 0 {
			style = negativeStyle
		}
		data[i] = barchart.BarData{
			Label: strconv.Itoa(i + 1),
			Values: []barchart.BarValue{
				{Name: p.XLabel(), Value: math.Abs(p.Y), Style: style},
			},
		}
	}

	bc := barchart.New(h.width(), h.height()+1,
		barchart.WithStyles(axisStyle, labelStyle),
	)
	bc.PushAll(data)
	bc.Draw()

	return lipgloss.JoinVertical(lipgloss.Left, bc.View(), legend(points, h))
}

func legend(points []domain.Point, h Hints) string {
	idxWidth := len(strconv.Itoa(len(points)))
	lines := make([]string, len(points))
	for i, p := range points {
		name := p.XLabel()
		if name == "" {
			name = "(none)"
		}
		value := h.Format(p.Y)
		line := fmt.Sprintf("%*d %s", idxWidth, i+1, name)
		room := h.width() - ansi.StringWidth(value) - 1
		line = ansi.Truncate(line, max(room, 4), "…")
		pad := max(h.width()-ansi.StringWidth(line)-ansi.StringWidth(value), 1)

		valueStyle := styles.Value
		if p.Y < 0 {
			valueStyle = styles.ErrorText
		}
		lines[i] = styles.MutedText.Render(line) + strings.Repeat(" ", pad) + valueStyle.Render(value)
	}
	return strings.Join(lines, "\n")
}
