// Package debug provides helpers for producing human readable dumps of
// internal data structures.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indentStep = "  "

// TreeWriter accumulates an indented textual tree, two spaces per depth
// level, one node per line.
type TreeWriter struct {
	buf strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.buf.String()
}

// Line adds a formatted node at the given depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(&tw.buf, format, args...)
	tw.buf.WriteByte('\n')
}

// TextBlock adds a labeled text node at the given depth. The value is quoted
// so control characters and surrounding whitespace stay visible; empty text
// is left empty to keep the dump scannable.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.buf.WriteString(label)
	tw.buf.WriteString(": ")
	if value != "" {
		tw.buf.WriteString(strconv.Quote(value))
	}
	tw.buf.WriteByte('\n')
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.buf.WriteString(indentStep)
	}
}
