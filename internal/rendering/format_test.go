package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/emergence/internal/decode"
	"github.com/jonathan/emergence/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longResume = "Seasoned backend engineer with a decade of experience designing distributed systems, " +
	"leading teams through migrations to Go, and mentoring juniors. Comfortable with Kubernetes, " +
	"PostgreSQL, and incident response. Supercalifragilisticexpialidocious-level debugging skills."

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "empty", text: "", width: 10, want: nil},
		{name: "whitespace only", text: " \n\t ", width: 10, want: nil},
		{name: "fits on one line", text: "go developer", width: 20, want: []string{"go developer"}},
		{name: "breaks on spaces", text: "one two three four", width: 9, want: []string{"one two", "three", "four"}},
		{name: "exact fit", text: "abc def", width: 7, want: []string{"abc def"}},
		{name: "collapses whitespace", text: "a\n\nb   c", width: 80, want: []string{"a b c"}},
		{name: "splits long word", text: "abcdefghij", width: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "long word after short word", text: "hi abcdefgh ok", width: 4, want: []string{"hi", "abcd", "efgh", "ok"}},
		{name: "width one", text: "ab c", width: 1, want: []string{"a", "b", "c"}},
		{name: "non-positive width treated as one", text: "ab", width: 0, want: []string{"a", "b"}},
		{name: "counts runes not bytes", text: "héllo wörld", width: 5, want: []string{"héllo", "wörld"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.text, tt.width))
		})
	}
}

func TestWrap_PreservesWords(t *testing.T) {
	lines := Wrap(longResume, 30)
	assert.Equal(t, strings.Join(strings.Fields(longResume), ""), strings.ReplaceAll(strings.Join(lines, ""), " ", ""))
}

func TestFormatter_WrapWidth(t *testing.T) {
	assert.Equal(t, 76, NewFormatter(80).WrapWidth())
	assert.Equal(t, 1, NewFormatter(2).WrapWidth())
	assert.Equal(t, 1, NewFormatter(0).WrapWidth())
	assert.Equal(t, 72, Formatter{Width: 80, Indent: "\t"}.WrapWidth(), "tab occupies a full tab stop")
	assert.Equal(t, 70, Formatter{Width: 80, Indent: "  \t  "}.WrapWidth())
}

func TestNewFormatter_NarrowsIndent(t *testing.T) {
	assert.Equal(t, DefaultIndent, NewFormatter(5).Indent)
	assert.Equal(t, "   ", NewFormatter(4).Indent)
	assert.Equal(t, " ", NewFormatter(2).Indent)
	assert.Equal(t, " ", NewFormatter(1).Indent)
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"héllo", 5},
		{"\t", 8},
		{"\tx", 9},
		{"abc\t", 8},
		{"\t\t", 16},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayWidth(tt.in), "%q", tt.in)
	}
}

func TestFormatter_NeverExceedsWidth(t *testing.T) {
	record := types.Record{Properties: []types.Property{
		{Name: "url", Value: "http://x"},
		{Name: "resume", Value: longResume},
	}}

	for width := 2; width <= 120; width++ {
		f := NewFormatter(width)
		out := f.FormatRecord(record)
		lines := strings.Split(out, "\n")
		require.Greater(t, len(lines), 1, "width %d", width)
		assert.Equal(t, "http://x", lines[0])

		for _, line := range lines[1:] {
			assert.True(t, strings.HasPrefix(line, f.Indent), "width %d: line %q lacks indent", width, line)
			assert.LessOrEqual(t, DisplayWidth(line), width, "width %d: line %q too wide", width, line)
		}
	}
}

func TestFormatter_TabIndentFitsTerminal(t *testing.T) {
	record := types.Record{Properties: []types.Property{
		{Name: "url", Value: "http://x"},
		{Name: "resume", Value: strings.Repeat("word ", 40)},
	}}

	for _, width := range []int{9, 20, 40, 80} {
		f := Formatter{Width: width, Indent: "\t"}
		lines := strings.Split(f.FormatRecord(record), "\n")
		require.Greater(t, len(lines), 1)
		for _, line := range lines[1:] {
			assert.LessOrEqual(t, DisplayWidth(line), width, "width %d: line %q too wide", width, line)
		}
	}
}

func TestFormatter_FormatRecord(t *testing.T) {
	f := Formatter{Width: 20, Indent: "  "}

	t.Run("url and wrapped resume", func(t *testing.T) {
		r := types.Record{Properties: []types.Property{
			{Name: "url", Value: "http://x"},
			{Name: "resume", Value: "A very long resume text that wraps"},
		}}
		assert.Equal(t, "http://x\n  A very long resume\n  text that wraps", f.FormatRecord(r))
	})

	t.Run("last occurrence wins", func(t *testing.T) {
		r := types.Record{Properties: []types.Property{
			{Name: "url", Value: "http://old"},
			{Name: "resume", Value: "old text"},
			{Name: "url", Value: "http://new"},
			{Name: "resume", Value: "new text"},
		}}
		assert.Equal(t, "http://new\n  new text", f.FormatRecord(r))
	})

	t.Run("missing resume", func(t *testing.T) {
		r := types.Record{Properties: []types.Property{{Name: "url", Value: "http://x"}}}
		assert.Equal(t, "http://x", f.FormatRecord(r))
	})

	t.Run("missing url", func(t *testing.T) {
		r := types.Record{Properties: []types.Property{{Name: "resume", Value: "text"}}}
		assert.Equal(t, "\n  text", f.FormatRecord(r))
	})
}

func TestFormatter_Format(t *testing.T) {
	f := Formatter{Width: 40, Indent: "\t"}

	t.Run("scalar verbatim", func(t *testing.T) {
		assert.Equal(t, "http://y", f.Format(decode.Scalar("http://y")))
	})

	t.Run("records in order", func(t *testing.T) {
		res := decode.Records([]types.Record{
			{Properties: []types.Property{{Name: "url", Value: "http://1"}}},
			{Properties: []types.Property{{Name: "url", Value: "http://2"}, {Name: "resume", Value: "two"}}},
		})
		assert.Equal(t, "http://1\nhttp://2\n\ttwo", f.Format(res))
	})

	t.Run("empty list", func(t *testing.T) {
		assert.Equal(t, "", f.Format(decode.Records(nil)))
	})
}

func TestPrinter(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, Formatter{Width: 40, Indent: "\t"})

	p.Prompt("> ")
	p.PrintResult(decode.Scalar("http://y"))
	p.PrintResult(decode.Records(nil))
	p.Errorf("query failed: %s", "boom")

	assert.Equal(t, "> http://y\n", out.String())
	assert.Equal(t, "query failed: boom\n", errOut.String())
	assert.Equal(t, 40, p.Formatter().Width)
}

func TestTerminalWidth_FallsBackToColumns(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	assert.Equal(t, 132, TerminalWidth(nil))

	t.Setenv("COLUMNS", "garbage")
	assert.Equal(t, DefaultWidth, TerminalWidth(nil))
}
