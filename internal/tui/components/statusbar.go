package components

import (
	"nathanbeddoewebdev/staffdesk/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders a status message line between the content and footer.
func StatusBar(s *styles.Styles, width int, message string, isError bool) string {
	if message == "" {
		return ""
	}

	style := s.MutedText
	if isError {
		style = s.ErrorText
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(style.Render(message))
}
