// Package components provides reusable Bubbletea UI building blocks for
// the ironrod TUI. These are render-only helpers (not tea.Model) used by
// the main TUI models to compose views.
package components

import (
	"strings"

	"ironrod/dash/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Header renders the application header bar.
//
//	┌──────────────────────────────────────────┐
//	│  ironrod > dashboard    localhost:8001   │
//	└──────────────────────────────────────────┘
func Header(width int, breadcrumb string, gateway string) string {
	if width < 10 {
		return ""
	}

	leftStyle := styles.Title.Foreground(styles.Blue)
	left := leftStyle.Render("ironrod")
	if breadcrumb != "" {
		left += styles.MutedText.Render(" > ") + styles.Title.Render(breadcrumb)
	}

	innerWidth := width - 4 // account for padding
	right := ""
	if gateway != "" {
		room := innerWidth - lipgloss.Width(left) - 1
		if room > 3 {
			right = styles.Subtitle.Render(ansi.Truncate(gateway, room, "…"))
		}
	}

	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)
	content := left + strings.Repeat(" ", gap) + right

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(styles.DimGray).
		Render(content)
}
