// Package styles derives the lipgloss styles used by the staffdesk TUI from a
// theme.Theme. All visual constants live in internal/theme; this package only
// turns a palette into styles so views can share one source of truth.
package styles

import (
	"nathanbeddoewebdev/staffdesk/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the full style set for one theme.
type Styles struct {
	Palette theme.Palette

	// --- Typography ---

	// Title is the main header text style.
	Title lipgloss.Style
	// Subtitle is used for secondary headings.
	Subtitle lipgloss.Style
	// Label is used for form field names.
	Label lipgloss.Style
	// Value is used for field values.
	Value lipgloss.Style
	// MutedText is for help text, hints, and less important info.
	MutedText lipgloss.Style
	// AccentText is for highlighted interactive elements.
	AccentText  lipgloss.Style
	ErrorText   lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style

	// --- Layout ---

	Card       lipgloss.Style
	CardActive lipgloss.Style
	Dialog     lipgloss.Style

	// --- Footer key bindings ---

	KeyStyle     lipgloss.Style
	KeyDescStyle lipgloss.Style
	KeySepStyle  lipgloss.Style

	// --- Tables ---

	TableHeader      lipgloss.Style
	TableCell        lipgloss.Style
	TableSelectedRow lipgloss.Style

	// --- Inputs ---

	InputFocused lipgloss.Style
	InputBlurred lipgloss.Style

	// --- Buttons ---

	Button         lipgloss.Style
	ButtonPrimary  lipgloss.Style
	ButtonDisabled lipgloss.Style
}

// Border is the default rounded border used by cards and inputs.
var Border = lipgloss.RoundedBorder()

// New builds the style set for t.
func New(t theme.Theme) *Styles {
	p := t.Palette
	return &Styles{
		Palette: p,

		Title:       lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Subtitle:    lipgloss.NewStyle().Foreground(p.Muted),
		Label:       lipgloss.NewStyle().Foreground(p.Muted).Bold(true),
		Value:       lipgloss.NewStyle().Foreground(p.Text),
		MutedText:   lipgloss.NewStyle().Foreground(p.Muted),
		AccentText:  lipgloss.NewStyle().Foreground(p.Accent),
		ErrorText:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		SuccessText: lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(p.Warning).Bold(true),

		Card: lipgloss.NewStyle().
			Border(Border).
			BorderForeground(p.Border).
			Padding(1, 2),
		CardActive: lipgloss.NewStyle().
			Border(Border).
			BorderForeground(p.Accent).
			Padding(1, 2),
		Dialog: lipgloss.NewStyle().
			Border(Border).
			BorderForeground(p.Primary).
			Background(p.Paper).
			Padding(1, 2),

		KeyStyle:     lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		KeyDescStyle: lipgloss.NewStyle().Foreground(p.Muted),
		KeySepStyle:  lipgloss.NewStyle().Foreground(p.Border),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(p.Muted).Padding(0, 1),
		TableCell:   lipgloss.NewStyle().Foreground(p.Text).Padding(0, 1),
		TableSelectedRow: lipgloss.NewStyle().
			Foreground(p.Background).
			Background(p.Highlight).
			Bold(true).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		InputBlurred: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(p.Text).
			Padding(0, 2),
		ButtonPrimary: lipgloss.NewStyle().
			Foreground(p.Background).
			Background(p.Primary).
			Bold(true).
			Padding(0, 2),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(p.Muted).
			Background(p.Highlight).
			Padding(0, 2),
	}
}

// FormatKeyBinding formats a single key binding for the footer.
func (s *Styles) FormatKeyBinding(key, desc string) string {
	return s.KeyStyle.Render(key) + " " + s.KeyDescStyle.Render(desc)
}

// RoleIndicator returns a small dot + role text.
func (s *Styles) RoleIndicator(role string) string {
	style := s.MutedText
	if role == "employee" {
		style = s.SuccessText
	}
	return style.Render("●") + " " + style.Render(role)
}

// CenterText centers text horizontally within the given width.
func CenterText(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}
