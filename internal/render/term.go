package render

import (
	"fmt"
	"io"

	"golang.org/x/term"
)

// ANSI escape sequences for screen control. The chart owns the whole
// terminal while running, so it draws into the alternate screen buffer
// and restores the normal one on exit.
const (
	altScreenEnter = "\x1b[?1049h"
	altScreenExit  = "\x1b[?1049l"
	clearScreen    = "\x1b[2J"
	cursorHome     = "\x1b[H"
)

// Fallback dimensions when the output is not a terminal.
const (
	defaultCols = 80
	defaultRows = 24
)

// EnterAltScreen switches w's terminal to the alternate screen buffer and
// clears it.
func EnterAltScreen(w io.Writer) {
	fmt.Fprint(w, altScreenEnter+clearScreen+cursorHome)
}

// ExitAltScreen restores the normal screen buffer.
func ExitAltScreen(w io.Writer) {
	fmt.Fprint(w, altScreenExit)
}

// TerminalSize returns a SizeFunc that reads the live dimensions of the
// terminal on fd, so the grid tracks window resizes between frames. It
// falls back to 80x24 when fd is not a terminal.
func TerminalSize(fd int) SizeFunc {
	return func() (int, int) {
		cols, rows, err := term.GetSize(fd)
		if err != nil || cols <= 0 || rows <= 0 {
			return defaultCols, defaultRows
		}
		return cols, rows
	}
}

// FixedSize returns a SizeFunc with constant dimensions.
func FixedSize(cols, rows int) SizeFunc {
	return func() (int, int) { return cols, rows }
}
