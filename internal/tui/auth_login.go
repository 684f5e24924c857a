package tui

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/staffdesk/internal/services/auth"
	"nathanbeddoewebdev/staffdesk/internal/tui/components"
	"nathanbeddoewebdev/staffdesk/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---

type tokenSavedMsg struct{}

type tokenSaveErrorMsg struct {
	err error
}

// --- Auth login model ---

type authLoginModel struct {
	account string
	apiURL  string
	store   auth.Store
	styles  *styles.Styles

	tokenInput textinput.Model

	width  int
	height int

	err      error
	saved    bool
	quitting bool
}

// AuthLoginResult holds the outcome of the login TUI.
type AuthLoginResult struct {
	Saved bool
}

func newAuthLoginModel(st *styles.Styles, store auth.Store, account, apiURL string) authLoginModel {
	ti := textinput.New()
	ti.Placeholder = "paste your API token here"
	ti.Focus()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.Width = 50

	return authLoginModel{
		account:    auth.NormalizeAccount(account),
		apiURL:     apiURL,
		store:      store,
		styles:     st,
		tokenInput: ti,
	}
}

// RunAuthLogin asks for the API token in a full-window prompt and stores it
// under account. A nil result means the user cancelled.
func RunAuthLogin(st *styles.Styles, store auth.Store, account, apiURL string) (*AuthLoginResult, error) {
	p := tea.NewProgram(newAuthLoginModel(st, store, account, apiURL), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run auth login: %w", err)
	}

	final := result.(authLoginModel)
	if final.quitting && !final.saved {
		return nil, nil
	}
	return &AuthLoginResult{Saved: final.saved}, nil
}

func (m authLoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m authLoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tokenSavedMsg:
		m.saved = true
		return m, tea.Quit

	case tokenSaveErrorMsg:
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(msg)
	return m, cmd
}

func (m authLoginModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		token := strings.TrimSpace(m.tokenInput.Value())
		if token == "" {
			m.err = fmt.Errorf("token cannot be empty")
			return m, nil
		}
		m.err = nil
		return m, m.saveToken(token)
	}

	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(msg)
	m.err = nil
	return m, cmd
}

func (m authLoginModel) saveToken(token string) tea.Cmd {
	store, account := m.store, m.account
	return func() tea.Msg {
		if err := store.SetToken(account, token); err != nil {
			return tokenSaveErrorMsg{err: err}
		}
		return tokenSavedMsg{}
	}
}

func (m authLoginModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.styles, m.width, "auth login", m.account)
	footer := components.Footer(m.styles, m.width, []components.KeyBinding{
		{Key: "enter", Desc: "save"},
		{Key: "esc", Desc: "cancel"},
	})

	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentH < 1 {
		contentH = 1
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderContent(contentH), footer)
}

func (m authLoginModel) renderContent(height int) string {
	s := m.styles
	title := s.Title.Render("API Token")
	hint := s.MutedText.Render("Token for " + m.apiURL)

	var errLine string
	if m.err != nil {
		errLine = "\n" + s.ErrorText.Render(m.err.Error())
	}

	card := lipgloss.JoinVertical(lipgloss.Left,
		title,
		hint,
		"",
		m.tokenInput.View(),
		errLine,
	)

	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, card)
}
