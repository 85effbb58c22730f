package domain

import "fmt"

// ChartKind selects the chart variant a renderer draws.
type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

// ParseChartKind validates a chart kind name.
func ParseChartKind(s string) (ChartKind, error) {
	switch ChartKind(s) {
	case ChartLine, ChartBar:
		return ChartKind(s), nil
	default:
		return "", fmt.Errorf("unknown chart kind %q (valid: line, bar)", s)
	}
}

// Point is one normalized chart coordinate. X is passed through from the
// payload untouched (string, float64, bool or nil).
type Point struct {
	X any     `json:"x"`
	Y float64 `json:"y"`
}

// XLabel renders X for axis labels and legends.
func (p Point) XLabel() string {
	switch x := p.X.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return Number(x).String()
	default:
		return fmt.Sprint(x)
	}
}
