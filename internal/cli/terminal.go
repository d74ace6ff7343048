package cli

import (
	"io"
	"os"

	"golang.org/x/term"
)

// isTerminal reports whether a writer is a TTY.
var isTerminal = writerIsTerminal

func writerIsTerminal(w io.Writer) bool {
	switch typed := w.(type) {
	case *os.File:
		return term.IsTerminal(int(typed.Fd()))
	case interface{ Fd() uintptr }:
		return term.IsTerminal(int(typed.Fd()))
	default:
		return false
	}
}
