package tui

import (
	"fmt"
	"strings"

	"ironrod/dash/internal/config"
	"ironrod/dash/internal/tui/components"
	"ironrod/dash/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsCardWidth  = 76
	settingsLabelWidth = 16
)

type settingSavedMsg struct {
	key     string
	cleared bool
}

type settingSaveFailedMsg struct {
	err error
}

// settingsModel lists every config key with its effective value. Editing
// validates on each keystroke, so a value that would be rejected by
// "config set" can never be saved from here either.
type settingsModel struct {
	cfg  *config.Config
	keys []config.KeySpec
	path string

	cursor   int
	editing  bool
	input    textinput.Model
	inputErr error

	width  int
	height int

	status  string
	isError bool
}

// RunConfigView starts the interactive settings editor.
func RunConfigView() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	m := newSettingsModel(cfg, config.Keys)
	m.path, _ = config.Path()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newSettingsModel(cfg *config.Config, keys []config.KeySpec) settingsModel {
	return settingsModel{cfg: cfg, keys: keys}
}

func (m settingsModel) Init() tea.Cmd {
	return nil
}

func (m settingsModel) selected() config.KeySpec {
	return m.keys[m.cursor]
}

func (m settingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)

	case settingSavedMsg:
		m.editing = false
		m.isError = false
		if msg.cleared {
			m.status = msg.key + " reset to default"
		} else {
			m.status = "Saved " + msg.key
		}
		return m, nil

	case settingSaveFailedMsg:
		m.status = "Error: " + msg.err.Error()
		m.isError = true
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m settingsModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.keys) == 0 {
		if s := msg.String(); s == "q" || s == "esc" || s == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.keys)-1 {
			m.cursor++
		}
	case "enter", "e":
		return m.startEditing()
	case "x":
		spec := m.selected()
		if spec.Get(m.cfg) == "" {
			m.status = spec.Name + " is already using its default"
			m.isError = false
			return m, nil
		}
		spec.Set(m.cfg, "")
		return m, m.save(spec.Name, true)
	}
	return m, nil
}

func (m settingsModel) startEditing() (tea.Model, tea.Cmd) {
	spec := m.selected()

	ti := textinput.New()
	ti.SetValue(spec.Get(m.cfg))
	ti.Placeholder = spec.Default
	if ti.Placeholder == "" {
		ti.Placeholder = spec.Hint
	}
	ti.Width = settingsCardWidth - settingsLabelWidth - 10
	ti.Focus()

	m.input = ti
	m.inputErr = m.check(ti.Value())
	m.editing = true
	m.status = ""
	return m, textinput.Blink
}

func (m settingsModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.inputErr = nil
		m.status = ""
		return m, nil
	case "enter":
		if err := m.check(m.input.Value()); err != nil {
			m.inputErr = err
			m.status = "Error: " + err.Error()
			m.isError = true
			return m, nil
		}
		spec := m.selected()
		if err := spec.Apply(m.cfg, m.input.Value()); err != nil {
			m.status = "Error: " + err.Error()
			m.isError = true
			return m, nil
		}
		return m, m.save(spec.Name, spec.Get(m.cfg) == "")
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.inputErr = m.check(m.input.Value())
	return m, cmd
}

// check runs the selected key's validator. Blank input is always accepted
// and means "use the default".
func (m settingsModel) check(value string) error {
	spec := m.selected()
	value = strings.TrimSpace(value)
	if value == "" || spec.Validate == nil {
		return nil
	}
	return spec.Validate(value)
}

func (m settingsModel) save(key string, cleared bool) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return settingSaveFailedMsg{err: err}
		}
		return settingSavedMsg{key: key, cleared: cleared}
	}
}

func (m settingsModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "config", "")

	bindings := []components.KeyBinding{
		{Key: "j/k", Desc: "navigate"},
		{Key: "e", Desc: "edit"},
		{Key: "x", Desc: "reset"},
		{Key: "q", Desc: "quit"},
	}
	if m.editing {
		bindings = []components.KeyBinding{
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	}
	footer := components.Footer(m.width, bindings)

	statusBar := ""
	if m.status != "" {
		statusBar = components.StatusBar(m.width, m.status, m.isError, m.path)
	}

	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - lipgloss.Height(statusBar)
	content := m.renderSettings(max(contentH, 1))

	sections := []string{header, content}
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m settingsModel) renderSettings(height int) string {
	title := styles.Title.Render("Settings")

	if len(m.keys) == 0 {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center, title, "",
				styles.MutedText.Render("No configuration keys defined.")))
	}

	indent := strings.Repeat(" ", settingsLabelWidth+2)
	var rows []string
	for i, spec := range m.keys {
		if i != m.cursor {
			rows = append(rows, "  "+
				styles.MutedText.Width(settingsLabelWidth).Render(spec.Name)+
				m.effectiveValue(spec, styles.MutedText))
			continue
		}

		prefix := styles.AccentText.Render("> ")
		name := styles.Label.Width(settingsLabelWidth).Render(spec.Name)
		if !m.editing {
			rows = append(rows,
				prefix+name+m.effectiveValue(spec, styles.Value.Bold(true)),
				indent+styles.MutedText.Italic(true).Render(spec.Description))
			continue
		}

		rows = append(rows, prefix+name+m.input.View(), indent+m.validationLine(spec))
	}

	card := styles.Card.Width(settingsCardWidth).Render(strings.Join(rows, "\n"))
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, title, "", card))
}

// effectiveValue shows what a dashboard run would use for spec.
func (m settingsModel) effectiveValue(spec config.KeySpec, style lipgloss.Style) string {
	if v := spec.Get(m.cfg); v != "" {
		return style.Render(v)
	}
	if spec.Default != "" {
		return style.Render(spec.Default) + " " + styles.MutedText.Render("(default)")
	}
	return styles.MutedText.Render("(not set)")
}

// validationLine sits under the input while editing.
func (m settingsModel) validationLine(spec config.KeySpec) string {
	switch {
	case m.inputErr != nil:
		return styles.ErrorText.Render("✗ " + m.inputErr.Error())
	case strings.TrimSpace(m.input.Value()) == "":
		return styles.MutedText.Render("blank resets to default · " + spec.Hint)
	default:
		return styles.SuccessText.Render("✓ ") + styles.MutedText.Render(spec.Hint)
	}
}
