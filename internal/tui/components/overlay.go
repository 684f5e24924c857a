package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position is where an overlay is placed on the base view.
type Position int

const (
	Center Position = iota
	TopRight
)

// Overlay composites panel onto base, a full-screen render of width x
// height. Base content to the left and right of the panel is kept, using
// ANSI-safe truncation so styled text is not corrupted.
func Overlay(base, panel string, width, height int, pos Position) string {
	if panel == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, strings.Repeat(" ", width))
	}

	panelLines := strings.Split(panel, "\n")
	panelH := len(panelLines)
	panelW := 0
	for _, l := range panelLines {
		panelW = max(panelW, lipgloss.Width(l))
	}

	var startRow, startCol int
	switch pos {
	case TopRight:
		startRow = 1
		startCol = width - panelW - 1
	default:
		startRow = (height - panelH) / 2
		startCol = (width - panelW) / 2
	}
	startRow = max(startRow, 0)
	startCol = max(startCol, 0)

	for i, pLine := range panelLines {
		row := startRow + i
		if row >= len(baseLines) {
			break
		}
		baseLine := baseLines[row]

		left := ansi.Truncate(baseLine, startCol, "")
		if lw := lipgloss.Width(left); lw < startCol {
			left += strings.Repeat(" ", startCol-lw)
		}

		pw := lipgloss.Width(pLine)
		if pw < panelW {
			pLine += strings.Repeat(" ", panelW-pw)
		}

		right := ""
		if cut := startCol + panelW; lipgloss.Width(baseLine) > cut {
			right = ansi.TruncateLeft(baseLine, cut, "")
		}

		baseLines[row] = left + pLine + right
	}

	return strings.Join(baseLines, "\n")
}
