package util

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether v is an *os.File attached to a terminal.
// Buffers and pipes set on a cobra command report false.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
