package render

import (
	"ironrod/dash/internal/domain"
	"ironrod/dash/internal/scorecard"
	"ironrod/dash/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Cell formats a scorecard value: numbers follow the hints, strings are
// shown as-is and missing values are blank.
func (h Hints) Cell(v domain.Value) string {
	if v.Kind == domain.KindNumber {
		return h.Format(v.Num)
	}
	return v.String()
}

// LatestTable renders one period's metrics as a two-column table.
func LatestTable(entries []domain.Entry, h Hints) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Name, h.Cell(e.Value)}
	}
	return newTable(h).
		Headers("Metric", "Value").
		Rows(rows...).
		Render()
}

// HistoryTable renders every period, one row per date and one column per
// metric.
func HistoryTable(columns []string, history []scorecard.Row, h Hints) string {
	headers := append([]string{"Week Of"}, columns...)
	rows := make([][]string, len(history))
	for i, r := range history {
		row := make([]string, 0, len(r.Cells)+1)
		row = append(row, r.Date)
		for _, c := range r.Cells {
			row = append(row, h.Cell(c))
		}
		rows[i] = row
	}
	return newTable(h).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func newTable(h Hints) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.DimGray)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeader
			}
			if col == 0 {
				return styles.Label.Padding(0, 1)
			}
			return styles.TableCell.Align(lipgloss.Right)
		})
	if h.Width > 0 {
		t = t.Width(h.Width)
	}
	return t
}
