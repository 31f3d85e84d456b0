package rendering

import (
	"fmt"
	"io"
	"sync"

	"github.com/jonathan/emergence/internal/decode"
)

// Printer serializes user-facing output. The embox listener and the
// interactive loop share one Printer so a pushed result never splits a prompt.
type Printer struct {
	mu        sync.Mutex
	out       io.Writer
	errOut    io.Writer
	formatter Formatter
}

// NewPrinter creates a Printer writing results and prompts to out and error reports to errOut.
func NewPrinter(out, errOut io.Writer, formatter Formatter) *Printer {
	return &Printer{out: out, errOut: errOut, formatter: formatter}
}

// Formatter returns the formatter used for results.
func (p *Printer) Formatter() Formatter {
	return p.formatter
}

// PrintResult formats res and writes it followed by a newline. Empty output writes nothing.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResult(res decode.Result) {
	text := p.formatter.Format(res)
	if text == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, text)
}

// Prompt writes prompt without a trailing newline.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Prompt(prompt string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	io.WriteString(p.out, prompt)
}

// Errorf writes one line to the error stream.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) Errorf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.errOut, format+"\n", args...)
}
