package components

import (
	"ironrod/dash/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders a status message line between the content and footer.
// The optional right-hand text (e.g. a clock) is right-aligned.
func StatusBar(width int, message string, isError bool, right string) string {
	if message == "" && right == "" {
		return ""
	}

	style := styles.MutedText
	if isError {
		style = styles.ErrorText
	}

	left := style.Render(message)
	if right != "" {
		r := styles.MutedText.Render(right)
		gap := max(width-4-lipgloss.Width(left)-lipgloss.Width(r), 1)
		left += lipgloss.NewStyle().Width(gap).Render("") + r
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(left)
}
