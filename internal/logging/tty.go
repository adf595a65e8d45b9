package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// isTTY reports whether w is a terminal. Anything exposing an Fd() method
// (os.File included) gets a real check; other writers never are.
func isTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether log output to w may use ANSI color codes.
// Color requires a TTY and can be disabled with NO_COLOR or TERM=dumb.
func SupportsColor(w io.Writer) bool {
	return supportsColor(isTTY(w))
}

func supportsColor(tty bool) bool {
	// Respect the NO_COLOR convention (https://no-color.org)
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return tty
}
