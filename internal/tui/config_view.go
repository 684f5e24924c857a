package tui

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/staffdesk/internal/config"
	"nathanbeddoewebdev/staffdesk/internal/shell"
	"nathanbeddoewebdev/staffdesk/internal/theme"
	"nathanbeddoewebdev/staffdesk/internal/tui/components"
	"nathanbeddoewebdev/staffdesk/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Config messages ---

type configSavedMsg struct {
	key string
}

type configSaveErrorMsg struct {
	err error
}

// --- Config model ---

type configViewModel struct {
	shell  *shell.Shell
	styles *styles.Styles
	cfg    *config.Config
	keys   []config.KeySpec

	cursor  int
	editing bool
	editor  textinput.Model

	width  int
	height int

	status  string
	isError bool
}

func newConfigViewModel(sh *shell.Shell, cfg *config.Config) configViewModel {
	return configViewModel{
		shell:  sh,
		styles: sh.Styles(),
		cfg:    cfg,
		keys:   config.Keys,
	}
}

// RunConfigView starts the interactive config viewer/editor TUI. Theme
// changes apply to the view as soon as they are saved.
func RunConfigView(sh *shell.Shell) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	p := tea.NewProgram(newConfigViewModel(sh, cfg), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m configViewModel) Init() tea.Cmd {
	return nil
}

func (m configViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case configSavedMsg:
		m.editing = false
		m.status = msg.key + " saved"
		m.isError = false
		if msg.key == "theme" {
			m.applyTheme()
		}
		return m, nil

	case configSaveErrorMsg:
		m.status = "Error: " + msg.err.Error()
		m.isError = true
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	return m, nil
}

// applyTheme moves the shell to the saved mode, or back to the terminal
// preference when the key was cleared.
func (m *configViewModel) applyTheme() {
	if mode, err := theme.ParseMode(m.cfg.Theme); err == nil {
		m.shell.SetMode(mode)
	} else {
		m.shell.ResetMode(nil)
	}
	m.styles = m.shell.Styles()
}

func (m configViewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditKey(msg)
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
		spec := m.keys[m.cursor]
		ti := textinput.New()
		ti.SetValue(spec.Get(m.cfg))
		ti.Focus()
		ti.Width = 40
		ti.Placeholder = "enter value (empty clears)"
		m.editor = ti
		m.editing = true
		m.status = ""
		return m, textinput.Blink
	}

	return m, nil
}

func (m configViewModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.editor.Value())
		spec := m.keys[m.cursor]
		if value != "" && spec.Validate != nil {
			if err := spec.Validate(value); err != nil {
				m.status = "Error: " + err.Error()
				m.isError = true
				return m, nil
			}
		}
		if value == "" {
			clearKey(m.cfg, spec.Name)
		} else {
			spec.Set(m.cfg, value)
		}
		return m, m.saveConfig(spec.Name)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// clearKey resets a key to unset. Set normalizes values and may ignore an
// empty one, so clearing goes through the struct directly.
func clearKey(cfg *config.Config, name string) {
	switch name {
	case "api-url":
		cfg.APIURL = ""
	case "theme":
		cfg.Theme = ""
	case "log-level":
		cfg.LogLevel = ""
	}
}

func (m configViewModel) saveConfig(key string) tea.Cmd {
	cfg := *m.cfg
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return configSaveErrorMsg{err: err}
		}
		return configSavedMsg{key: key}
	}
}

func (m configViewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.styles, m.width, "config", "")

	var footerBindings []components.KeyBinding
	if m.editing {
		footerBindings = []components.KeyBinding{
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	} else {
		footerBindings = []components.KeyBinding{
			{Key: "j/k", Desc: "navigate"},
			{Key: "e", Desc: "edit"},
			{Key: "q", Desc: "quit"},
		}
	}
	footer := components.Footer(m.styles, m.width, footerBindings)

	statusBar := ""
	if m.status != "" {
		statusBar = components.StatusBar(m.styles, m.width, m.status, m.isError)
	}

	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	sections := []string{header, m.renderContent(contentH)}
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m configViewModel) renderContent(height int) string {
	s := m.styles
	title := s.Title.Render("Configuration")

	cardWidth := 64
	labelWidth := 14

	rows := make([]string, 0, len(m.keys)+1)
	for i, spec := range m.keys {
		selected := i == m.cursor

		prefix := "  "
		if selected {
			prefix = s.AccentText.Render("> ")
		}

		value := spec.Get(m.cfg)
		if value == "" {
			value = "(not set)"
		}

		var row string
		switch {
		case selected && m.editing:
			row = prefix + s.Label.Width(labelWidth).Render(spec.Name) + m.editor.View()
		case selected:
			row = prefix + s.Label.Width(labelWidth).Render(spec.Name) + s.Value.Bold(true).Render(value)
		default:
			row = prefix + s.MutedText.Width(labelWidth).Render(spec.Name) + s.MutedText.Render(value)
		}
		rows = append(rows, row)

		if selected && !m.editing {
			rows = append(rows, strings.Repeat(" ", 4)+s.MutedText.Italic(true).Render(spec.Description))
		}
	}

	card := s.Card.Width(cardWidth).Render(strings.Join(rows, "\n"))
	combined := lipgloss.JoinVertical(lipgloss.Center, title, "", card)

	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, combined)
}
