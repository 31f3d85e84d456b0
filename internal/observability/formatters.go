package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/emergence/internal/config"
)

const (
	// boxWidth is the width of formatted output boxes
	boxWidth = 60
)

// Printer writes boxed diagnostic summaries for --show-config.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if r := []rune(line); len(r) > boxWidth-4 {
			line = string(r[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintConfig outputs the effective configuration and where each value came from.
func (p *Printer) PrintConfig(cfg config.EffectiveConfig) {
	var sb strings.Builder

	const fileLabel = "Config file: "
	file := cfg.Origin.File
	if file == "" {
		file = "(none)"
	}
	sb.WriteString(fileLabel + keepTail(file, boxWidth-4-len(fileLabel)) + "\n\n")
	sb.WriteString(fmt.Sprintf("disco url:   %s\n", cfg.DiscoURL))
	sb.WriteString(fmt.Sprintf("  from %s\n", cfg.Origin.DiscoURL))
	sb.WriteString(fmt.Sprintf("embox url:   %s\n", cfg.EmboxURL))
	sb.WriteString(fmt.Sprintf("  from %s\n", cfg.Origin.EmboxURL))
	sb.WriteString(fmt.Sprintf("embox port:  %d\n", cfg.EmboxPort))
	sb.WriteString(fmt.Sprintf("  from %s", cfg.Origin.EmboxPort))

	p.printBox("EFFECTIVE CONFIGURATION", sb.String())
}

// keepTail shortens s to limit runes by dropping its start, so a path keeps its file name.
func keepTail(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return "..." + string(r[len(r)-(limit-3):])
}
