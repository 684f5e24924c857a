package components

import (
	"fmt"

	"nathanbeddoewebdev/staffdesk/internal/tui/styles"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
)

// activityHeight is the fixed height of the activity sparkline.
const activityHeight = 2

// ActivityChart renders a sparkline of mutation counts per day, oldest
// first, with a one-line caption.
func ActivityChart(s *styles.Styles, label string, counts []float64, width int) string {
	total := 0
	for _, c := range counts {
		total += int(c)
	}
	caption := s.Label.Render(label) + "  " + s.MutedText.Render(fmt.Sprintf("%d changes", total))
	if len(counts) == 0 || width < 10 {
		return caption
	}

	w := min(len(counts), width)
	sl := sparkline.New(w, activityHeight,
		sparkline.WithStyle(lipgloss.NewStyle().Foreground(s.Palette.Accent)),
	)
	sl.PushAll(counts)
	sl.Draw()

	return lipgloss.JoinVertical(lipgloss.Left, caption, sl.View())
}
