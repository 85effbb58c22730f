package components

import (
	"strings"

	"ironrod/dash/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// cardChrome is the horizontal space taken by a card's border and padding.
const cardChrome = 6

// CardInnerWidth returns the content width available inside a card of the
// given outer width.
func CardInnerWidth(width int) int {
	return max(width-cardChrome, 1)
}

// PanelCard renders a bordered panel: a title row with a right-aligned
// status badge, the body, and an optional muted note underneath.
func PanelCard(width int, title, badge, body, note string, active bool) string {
	inner := CardInnerWidth(width)

	badgeW := lipgloss.Width(badge)
	titleRoom := max(inner-badgeW-1, 1)
	t := styles.Title.Render(ansi.Truncate(title, titleRoom, "…"))
	gap := max(inner-lipgloss.Width(t)-badgeW, 1)
	top := t + strings.Repeat(" ", gap) + badge

	rows := []string{top, "", body}
	if note != "" {
		rows = append(rows, "", note)
	}

	style := styles.Card
	if active {
		style = styles.CardActive
	}
	return style.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
