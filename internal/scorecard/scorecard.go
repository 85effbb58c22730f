// Package scorecard reads the weekly scorecard payload and reshapes it for
// display: the latest period as metric/value rows, or every period as a
// date-by-metric grid.
package scorecard

import (
	"fmt"

	"ironrod/dash/internal/domain"
)

// Decode validates a `{dates: [...], metrics: [...]}` body. Dates may be
// strings or numbers; each metrics entry must be an object; both arrays
// must have the same length.
func Decode(body domain.Value) (domain.Snapshot, error) {
	if body.Kind != domain.KindObject {
		return domain.Snapshot{}, fmt.Errorf("%w: scorecard must be an object", domain.ErrParse)
	}

	datesV, ok := body.Get("dates")
	if !ok || datesV.Kind != domain.KindArray {
		return domain.Snapshot{}, fmt.Errorf("%w: scorecard dates must be an array", domain.ErrParse)
	}
	metricsV, ok := body.Get("metrics")
	if !ok || metricsV.Kind != domain.KindArray {
		return domain.Snapshot{}, fmt.Errorf("%w: scorecard metrics must be an array", domain.ErrParse)
	}
	if len(datesV.Items) != len(metricsV.Items) {
		return domain.Snapshot{}, fmt.Errorf("%w: scorecard has %d dates but %d metric rows",
			domain.ErrParse, len(datesV.Items), len(metricsV.Items))
	}

	snap := domain.Snapshot{
		Dates:   make([]string, len(datesV.Items)),
		Metrics: make([]domain.Value, len(metricsV.Items)),
	}
	for i, d := range datesV.Items {
		if d.Kind != domain.KindString && d.Kind != domain.KindNumber {
			return domain.Snapshot{}, fmt.Errorf("%w: scorecard date %d is not a string", domain.ErrParse, i)
		}
		snap.Dates[i] = d.String()
	}
	for i, m := range metricsV.Items {
		if m.Kind != domain.KindObject {
			return domain.Snapshot{}, fmt.Errorf("%w: scorecard metrics %d is not an object", domain.ErrParse, i)
		}
		snap.Metrics[i] = m
	}
	return snap, nil
}

// Latest returns the last period's date and its metrics in the order they
// appear in that period's entry. A repeated metric is listed once with its
// last value. Keys are not checked against earlier
// periods; a metric added or dropped between weeks simply shows up here.
func Latest(s domain.Snapshot) (string, []domain.Entry, error) {
	if len(s.Dates) == 0 {
		return "", nil, domain.ErrEmptyScorecard
	}
	last := len(s.Dates) - 1
	if last >= len(s.Metrics) {
		return "", nil, fmt.Errorf("%w: no metrics for %s", domain.ErrParse, s.Dates[last])
	}

	return s.Dates[last], entries(s.Metrics[last].Fields), nil
}

// entries lists each metric once, at its first position, with the value
// Get would return for it.
func entries(fields []domain.Field) []domain.Entry {
	row := make([]domain.Entry, 0, len(fields))
	pos := make(map[string]int, len(fields))
	for _, f := range fields {
		if i, ok := pos[f.Name]; ok {
			row[i].Value = f.Value
			continue
		}
		pos[f.Name] = len(row)
		row = append(row, domain.Entry{Name: f.Name, Value: f.Value})
	}
	return row
}

// Row is one period of the history grid. Cells align with the grid's
// columns; a metric absent that period is a null Value.
type Row struct {
	Date  string
	Cells []domain.Value
}

// History lays out every period. Columns are the union of metric names in
// first-seen order across all periods.
func History(s domain.Snapshot) (columns []string, rows []Row, err error) {
	if len(s.Dates) == 0 {
		return nil, nil, domain.ErrEmptyScorecard
	}

	seen := make(map[string]int)
	for _, m := range s.Metrics {
		for _, f := range m.Fields {
			if _, ok := seen[f.Name]; !ok {
				seen[f.Name] = len(columns)
				columns = append(columns, f.Name)
			}
		}
	}

	rows = make([]Row, len(s.Dates))
	for i, date := range s.Dates {
		cells := make([]domain.Value, len(columns))
		if i < len(s.Metrics) {
			for _, f := range s.Metrics[i].Fields {
				cells[seen[f.Name]] = f.Value
			}
		}
		rows[i] = Row{Date: date, Cells: cells}
	}
	return columns, rows, nil
}
