package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether w is backed by a terminal. Anything without an
// Fd method, like a bytes.Buffer, is never a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI escapes are worth emitting on w.
func SupportsColor(w io.Writer) bool {
	return colorAllowed(IsTTY(w))
}

// colorAllowed applies the conventions that disable color even on a
// terminal: the NO_COLOR variable (https://no-color.org) and TERM=dumb.
func colorAllowed(isTTY bool) bool {
	if !isTTY {
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
