package components

import (
	"strings"

	"nathanbeddoewebdev/staffdesk/internal/toast"
	"nathanbeddoewebdev/staffdesk/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const toastMaxWidth = 48

// Toasts renders the active notifications as a stacked panel, newest on
// top. It returns "" when there is nothing to show.
func Toasts(s *styles.Styles, toasts []toast.Toast, width int) string {
	if len(toasts) == 0 || width < 20 {
		return ""
	}

	w := min(toastMaxWidth, width-4)
	textW := w - 6 // border, padding and icon

	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		icon, color := toastDecor(s, t.Kind)
		msg := ansi.Truncate(strings.ReplaceAll(t.Message, "\n", " "), textW, "…")
		box := lipgloss.NewStyle().
			Border(styles.Border).
			BorderForeground(color).
			Background(s.Palette.Paper).
			Padding(0, 1).
			Width(w - 2).
			Render(lipgloss.NewStyle().Foreground(color).Render(icon) + " " + s.Value.Render(msg))
		lines = append(lines, box)
	}
	return lipgloss.JoinVertical(lipgloss.Right, lines...)
}

func toastDecor(s *styles.Styles, kind toast.Kind) (string, lipgloss.Color) {
	switch kind {
	case toast.Success:
		return "✓", s.Palette.Success
	case toast.Error:
		return "✗", s.Palette.Error
	}
	return "•", s.Palette.Accent
}
