package rendering

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// TerminalWidth returns the column count of f if it is a terminal, then
// falls back to $COLUMNS, then DefaultWidth.
func TerminalWidth(f *os.File) int {
	if f != nil {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if cols, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS"))); err == nil && cols > 0 {
		return cols
	}
	return DefaultWidth
}
