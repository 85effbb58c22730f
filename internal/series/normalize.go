// Package series maps record payloads onto chart points.
package series

import (
	"math"

	"ironrod/dash/internal/domain"
)

// Normalize selects xField and yField from every record and returns the
// resulting points in payload order. Records whose y value is missing,
// null, or not numeric are dropped rather than plotted as zero, so a gap
// in the data never drags the chart's scale down. Numeric strings such as
// "1250.00" count as numeric. x is passed through without coercion; a
// missing x yields a nil X. The input is never modified.
func Normalize(records []domain.Value, xField, yField string) []domain.Point {
	points := make([]domain.Point, 0, len(records))
	for _, rec := range records {
		yv, ok := rec.Get(yField)
		if !ok {
			continue
		}
		y, ok := yv.Number()
		if !ok || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}

		xv, _ := rec.Get(xField)
		points = append(points, domain.Point{X: xv.Scalar(), Y: y})
	}
	return points
}

// Values returns the y values of points, for renderers that plot by index.
func Values(points []domain.Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Y
	}
	return out
}

// Bounds returns the minimum and maximum y values. Both are zero for an
// empty series.
func Bounds(points []domain.Point) (lo, hi float64) {
	if len(points) == 0 {
		return 0, 0
	}
	lo, hi = points[0].Y, points[0].Y
	for _, p := range points[1:] {
		lo = min(lo, p.Y)
		hi = max(hi, p.Y)
	}
	return lo, hi
}
