package termutil

import (
	"io"

	"github.com/moby/term"
)

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	_, isTerminal := term.GetFdInfo(w)
	return isTerminal
}
