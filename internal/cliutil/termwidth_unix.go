//go:build unix

package cliutil

import (
	"os"

	"golang.org/x/sys/unix"
)

// TermWidth returns the controlling terminal's column width, or ok=false
// if stdout isn't a TTY or the ioctl fails. Used only by WrapForDisplay
// to reflow long lines of interactive REPL output; -no-prompt and script
// output never depend on this.
func TermWidth() (width int, ok bool) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, false
	}
	if ws.Col == 0 {
		return 0, false
	}
	return int(ws.Col), true
}
