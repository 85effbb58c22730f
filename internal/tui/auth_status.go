package tui

import (
	"errors"
	"fmt"
	"strings"

	"ironrod/dash/internal/services/auth"
	"ironrod/dash/internal/tui/components"
	"ironrod/dash/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GatewayStatus is the keychain state of one gateway token.
type GatewayStatus struct {
	Name   string
	Status string // "authenticated", "not authenticated", or an error message
	OK     bool
}

// CheckGateways reports whether each named gateway has a stored token.
func CheckGateways(store auth.Store, names []string) []GatewayStatus {
	out := make([]GatewayStatus, 0, len(names))
	for _, name := range names {
		name = auth.NormalizeGateway(name)
		_, err := store.GetToken(name)
		switch {
		case err == nil:
			out = append(out, GatewayStatus{Name: name, Status: "authenticated", OK: true})
		case errors.Is(err, auth.ErrTokenNotFound):
			out = append(out, GatewayStatus{Name: name, Status: "not authenticated"})
		default:
			out = append(out, GatewayStatus{Name: name, Status: fmt.Sprintf("error: %v", err)})
		}
	}
	return out
}

type authStatusModel struct {
	baseURL  string
	statuses []GatewayStatus

	width  int
	height int
}

// RunAuthStatus starts the full-window auth status TUI.
func RunAuthStatus(baseURL string, statuses []GatewayStatus) error {
	m := authStatusModel{baseURL: baseURL, statuses: statuses}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m authStatusModel) Init() tea.Cmd {
	return nil
}

func (m authStatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m authStatusModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "auth status", m.baseURL)
	footer := components.Footer(m.width, []components.KeyBinding{{Key: "q", Desc: "quit"}})

	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)
	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderContent(contentH), footer)
}

func (m authStatusModel) renderContent(height int) string {
	if len(m.statuses) == 0 {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No gateways configured."),
		)
	}

	title := styles.Title.Render("Gateway Authentication")

	labelWidth := 16
	rows := make([]string, 0, len(m.statuses))
	for _, gs := range m.statuses {
		name := styles.Label.Width(labelWidth).Render(gs.Name)
		statusText := styles.MutedText.Render(gs.Status)
		if gs.OK {
			statusText = styles.SuccessText.Render(gs.Status)
		}
		rows = append(rows, name+statusText)
	}

	card := styles.Card.Width(48).Render(strings.Join(rows, "\n"))
	combined := lipgloss.JoinVertical(lipgloss.Center, title, "", card)

	return lipgloss.Place(
		m.width, height,
		lipgloss.Center, lipgloss.Center,
		combined,
	)
}
