package render

import (
	"strings"

	"ironrod/dash/internal/domain"
	"ironrod/dash/internal/series"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// yAxisWidth is the space asciigraph reserves for labels and the axis.
const yAxisWidth = 9

func lineChart(points []domain.Point, h Hints) string {
	data := series.Values(points)
	if len(data) == 1 {
		// asciigraph needs two samples to draw a segment.
		data = []float64{data[0], data[0]}
	}

	opts := []asciigraph.Option{
		asciigraph.Height(h.height()),
		asciigraph.Width(max(h.width()-yAxisWidth, minPlotWidth)),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.DodgerBlue),
		asciigraph.LabelColor(asciigraph.Default),
	}
	if caption := h.caption(); caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}

	plot := asciigraph.Plot(data, opts...)
	return lipgloss.JoinVertical(lipgloss.Left, plot, xAxisLabels(points, h, yAxisWidth))
}

// caption names the y unit. asciigraph prints axis labels as bare numbers,
// so currency panels carry the code here instead.
func (h Hints) caption() string {
	if !h.Currency {
		return h.YLabel
	}
	code := strings.ToUpper(strings.TrimSpace(h.CurrencyCode))
	if !ValidCurrency(code) {
		code = DefaultCurrency
	}
	if h.YLabel == "" {
		return code
	}
	return h.YLabel + " (" + code + ")"
}
