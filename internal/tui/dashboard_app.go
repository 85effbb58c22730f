package tui

import (
	"context"
	"fmt"
	"time"

	"ironrod/dash/internal/dashboard"
	"ironrod/dash/internal/tui/components"
	"ironrod/dash/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---

type panelUpdatesMsg struct {
	updates []dashboard.Update
}

type composerClosedMsg struct{}

type clockTickMsg time.Time

// clockInterval re-renders relative "updated … ago" labels.
const clockInterval = time.Second

// twoColumnWidth is the terminal width at which panels are laid out side
// by side.
const twoColumnWidth = 150

// Composer is the part of *dashboard.Composer the view drives.
type Composer interface {
	Panels() []dashboard.Panel
	Next(ctx context.Context) ([]dashboard.Update, bool)
	Refresh() error
	Stop()
}

// DashboardOptions configures RunDashboard.
type DashboardOptions struct {
	Title      string
	Breadcrumb string
	Gateway    string
	Currency   string
	// History starts scorecard panels in multi-period mode.
	History bool
}

type dashboardModel struct {
	composer Composer
	opts     DashboardOptions

	panels  []dashboard.Panel
	cursor  int
	history bool

	ctx    context.Context
	cancel context.CancelFunc

	spinner  spinner.Model
	viewport viewport.Model
	ready    bool

	now    time.Time
	status string
	isErr  bool

	width  int
	height int
}

// RunDashboard runs the live dashboard until the user quits. The composer
// must already be started; it is stopped when the view exits.
func RunDashboard(c Composer, opts DashboardOptions) error {
	m := newDashboardModel(c, opts)
	defer m.cancel()
	defer c.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newDashboardModel(c Composer, opts DashboardOptions) dashboardModel {
	ctx, cancel := context.WithCancel(context.Background())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	return dashboardModel{
		composer: c,
		opts:     opts,
		panels:   c.Panels(),
		history:  opts.History,
		ctx:      ctx,
		cancel:   cancel,
		spinner:  s,
		now:      time.Now(),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForUpdates(), clockTick())
}

func (m dashboardModel) waitForUpdates() tea.Cmd {
	c, ctx := m.composer, m.ctx
	return func() tea.Msg {
		ups, ok := c.Next(ctx)
		if !ok {
			return composerClosedMsg{}
		}
		return panelUpdatesMsg{updates: ups}
	}
}

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case panelUpdatesMsg:
		for _, u := range msg.updates {
			if u.Index >= 0 && u.Index < len(m.panels) {
				m.panels[u.Index] = m.panels[u.Index].Apply(u.Result)
			}
		}
		if !m.isErr {
			m.status = ""
		}
		m.refreshContent()
		return m, m.waitForUpdates()

	case composerClosedMsg:
		return m, nil

	case clockTickMsg:
		m.now = time.Time(msg)
		m.refreshContent()
		return m, clockTick()

	case spinner.TickMsg:
		if !m.anyLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.cancel()
		m.composer.Stop()
		return m, tea.Quit

	case "r":
		if err := m.composer.Refresh(); err != nil {
			m.status = "Refresh failed: " + err.Error()
			m.isErr = true
			return m, nil
		}
		m.status = "Refreshing all panels…"
		m.isErr = false
		return m, m.spinner.Tick

	case "h":
		if m.hasScorecard() {
			m.history = !m.history
			m.refreshContent()
		}
		return m, nil

	case "tab":
		if len(m.panels) > 0 {
			m.cursor = (m.cursor + 1) % len(m.panels)
			m.refreshContent()
		}
		return m, nil

	case "shift+tab":
		if len(m.panels) > 0 {
			m.cursor = (m.cursor - 1 + len(m.panels)) % len(m.panels)
			m.refreshContent()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m dashboardModel) anyLoading() bool {
	for _, p := range m.panels {
		if !p.Loaded && p.LastErr == nil {
			return true
		}
	}
	return false
}

func (m dashboardModel) hasScorecard() bool {
	for _, p := range m.panels {
		if p.Config.Kind == dashboard.KindScorecard {
			return true
		}
	}
	return false
}

func (m *dashboardModel) chrome() (header, status, footer string) {
	header = components.Header(m.width, m.opts.Breadcrumb, m.opts.Gateway)

	bindings := []components.KeyBinding{
		{Key: "j/k", Desc: "scroll"},
		{Key: "tab", Desc: "focus"},
		{Key: "r", Desc: "refresh"},
	}
	if m.hasScorecard() {
		desc := "history"
		if m.history {
			desc = "latest"
		}
		bindings = append(bindings, components.KeyBinding{Key: "h", Desc: desc})
	}
	bindings = append(bindings, components.KeyBinding{Key: "q", Desc: "quit"})
	footer = components.Footer(m.width, bindings)

	msg := m.status
	if m.anyLoading() {
		msg = m.spinner.View() + " Loading panels…"
	}
	status = components.StatusBar(m.width, msg, m.isErr, m.now.Format("15:04:05"))
	return header, status, footer
}

func (m *dashboardModel) resize() {
	header, status, footer := m.chrome()
	h := max(m.height-lipgloss.Height(header)-lipgloss.Height(status)-lipgloss.Height(footer), 1)
	if !m.ready {
		m.viewport = viewport.New(m.width, h)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = h
	}
	m.refreshContent()
}

func (m *dashboardModel) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderPanels())
}

func (m dashboardModel) renderPanels() string {
	columns := 1
	if m.width >= twoColumnWidth && len(m.panels) > 1 {
		columns = 2
	}
	cardWidth := m.width / columns

	v := PanelView{
		Width:    cardWidth,
		Currency: m.opts.Currency,
		History:  m.history,
		Now:      m.now,
	}

	var rows []string
	if m.opts.Title != "" {
		rows = append(rows, lipgloss.NewStyle().Padding(0, 2).Render(styles.Title.Render(m.opts.Title)))
	}
	for i := 0; i < len(m.panels); i += columns {
		var cells []string
		for j := i; j < i+columns && j < len(m.panels); j++ {
			cells = append(cells, RenderPanel(m.panels[j], v, j == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m dashboardModel) View() string {
	if m.width == 0 || m.height == 0 || !m.ready {
		return ""
	}

	header, status, footer := m.chrome()
	sections := []string{header, m.viewport.View()}
	if status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
