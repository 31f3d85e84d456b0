// Package rendering formats decoded disco results for terminal display.
package rendering

import "strings"

// Wrap splits text into lines of at most width runes, breaking on whitespace.
// Runs of whitespace (including newlines) collapse to a single space and words
// longer than width are split.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var lines []string
	var line []rune

	flush := func() {
		if len(line) > 0 {
			lines = append(lines, string(line))
			line = line[:0]
		}
	}

	for _, field := range strings.Fields(text) {
		word := []rune(field)

		for len(word) > width {
			flush()
			lines = append(lines, string(word[:width]))
			word = word[width:]
		}
		if len(word) == 0 {
			continue
		}

		switch {
		case len(line) == 0:
			line = append(line, word...)
		case len(line)+1+len(word) <= width:
			line = append(line, ' ')
			line = append(line, word...)
		default:
			flush()
			line = append(line, word...)
		}
	}
	flush()

	return lines
}
