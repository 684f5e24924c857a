// Package theme builds the light and dark palettes for the staffdesk TUI.
//
// New is a pure function: the same Mode always yields a value-equal Theme.
// Styles derived from a Theme live in internal/tui/styles.
package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Mode selects one of the two palettes.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ErrUnknownMode is returned by ParseMode for anything other than light or dark.
var ErrUnknownMode = errors.New("unknown theme mode")

// FontFamily is carried for parity with the web dashboard. Terminals ignore it.
const FontFamily = "var(--font-sans), Inter, sans-serif"

// Palette holds the hardcoded colors for one mode.
type Palette struct {
	Primary    lipgloss.Color
	Background lipgloss.Color
	Paper      lipgloss.Color
	Text       lipgloss.Color
	Highlight  lipgloss.Color

	// Terminal-only colors.
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// Typography describes text settings.
type Typography struct {
	FontFamily string
}

// Theme is an immutable theme descriptor.
type Theme struct {
	Mode       Mode
	Palette    Palette
	Typography Typography
}

var lightPalette = Palette{
	Primary:    lipgloss.Color("#000000"),
	Background: lipgloss.Color("#ffffff"),
	Paper:      lipgloss.Color("#ffffff"),
	Text:       lipgloss.Color("#171717"),
	Highlight:  lipgloss.Color("#e8e8e8"),

	Muted:   lipgloss.Color("#6b6b6b"),
	Border:  lipgloss.Color("#c4c4c4"),
	Accent:  lipgloss.Color("#1f5fa8"),
	Success: lipgloss.Color("#2e7d32"),
	Warning: lipgloss.Color("#9a6700"),
	Error:   lipgloss.Color("#c62828"),
}

var darkPalette = Palette{
	Primary:    lipgloss.Color("#ffffff"),
	Background: lipgloss.Color("#0a0a0a"),
	Paper:      lipgloss.Color("#0f1724"),
	Text:       lipgloss.Color("#ededed"),
	Highlight:  lipgloss.Color("#e8e8e8"),

	Muted:   lipgloss.Color("#888888"),
	Border:  lipgloss.Color("#444444"),
	Accent:  lipgloss.Color("#5fafff"),
	Success: lipgloss.Color("#5fd787"),
	Warning: lipgloss.Color("#ffd787"),
	Error:   lipgloss.Color("#ff8787"),
}

// New returns the theme for mode. Unrecognized modes get the light theme;
// callers handling user input should go through ParseMode first.
func New(mode Mode) Theme {
	if mode == Dark {
		return Theme{Mode: Dark, Palette: darkPalette, Typography: Typography{FontFamily: FontFamily}}
	}
	return Theme{Mode: Light, Palette: lightPalette, Typography: Typography{FontFamily: FontFamily}}
}

// ParseMode parses a user-supplied mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("%w %q (valid: light, dark)", ErrUnknownMode, s)
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether m is the dark mode.
func (m Mode) IsDark() bool { return m == Dark }

func (m Mode) String() string { return string(m) }
