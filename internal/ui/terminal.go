package ui

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
