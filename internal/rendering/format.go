package rendering

import (
	"strings"

	"github.com/jonathan/emergence/internal/decode"
	"github.com/jonathan/emergence/internal/types"
)

const (
	// DefaultIndent prefixes every wrapped resume line.
	DefaultIndent = "    "
	// DefaultWidth is used when the terminal width cannot be discovered.
	DefaultWidth = 80
	// TabWidth is the tab stop assumed when an indent contains tabs.
	TabWidth = 8
)

// Formatter renders records as a url line followed by an indented, wrapped resume block.
type Formatter struct {
	Width  int
	Indent string
}

// NewFormatter returns a Formatter for the given terminal width using
// DefaultIndent, narrowed on terminals too small to hold it plus one column.
func NewFormatter(width int) Formatter {
	indent := DefaultIndent
	if width <= len(indent) {
		indent = strings.Repeat(" ", max(width-1, 1))
	}
	return Formatter{Width: width, Indent: indent}
}

// WrapWidth is the column budget for resume text: the terminal width minus
// the display width of the indent, never less than one.
func (f Formatter) WrapWidth() int {
	return max(f.Width-DisplayWidth(f.Indent), 1)
}

// DisplayWidth is the number of terminal columns s occupies when printed from
// column zero, with tabs advancing to the next multiple of TabWidth.
func DisplayWidth(s string) int {
	col := 0
	for _, r := range s {
		if r == '\t' {
			col += TabWidth - col%TabWidth
			continue
		}
		col++
	}
	return col
}

// FormatRecord renders one record. A record without a resume renders as its url alone.
func (f Formatter) FormatRecord(r types.Record) string {
	var sb strings.Builder
	sb.WriteString(r.URL())
	for _, line := range Wrap(r.Resume(), f.WrapWidth()) {
		sb.WriteByte('\n')
		sb.WriteString(f.Indent)
		sb.WriteString(line)
	}
	return sb.String()
}

// Format renders a decoded result. Scalars are returned verbatim; records are
// rendered in order, one after another.
func (f Formatter) Format(res decode.Result) string {
	if !res.IsRecords() {
		return res.Scalar
	}

	parts := make([]string, 0, len(res.Records))
	for _, r := range res.Records {
		parts = append(parts, f.FormatRecord(r))
	}
	return strings.Join(parts, "\n")
}
