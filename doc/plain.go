package doc

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Plain text output - the degradation target for formats without specialized
// rendering support.

// WritePlain serializes the document as plain text.
func WritePlain(w io.Writer, d *Document) error {
	var buf strings.Builder

	if d.Title != "" {
		writeUnderlined(&buf, d.Title, '=')
		buf.WriteByte('\n')
	}

	for i := range d.Blocks {
		writeBlockPlain(&buf, &d.Blocks[i], "")
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

func writeBlockPlain(buf *strings.Builder, b *Block, indent string) {
	switch b.Kind {
	case BlockParagraph:
		if b.Para != nil {
			writeIndented(buf, indent, inlinesPlain(b.Para.Text))
			buf.WriteByte('\n')
		}
	case BlockHeading:
		if b.Heading != nil {
			underline := byte('-')
			if b.Heading.Level <= 1 {
				underline = '='
			}
			writeUnderlined(buf, InlinesText(b.Heading.Text), underline)
			buf.WriteByte('\n')
		}
	case BlockDiv:
		if b.Div != nil {
			for i := range b.Div.Blocks {
				writeBlockPlain(buf, &b.Div.Blocks[i], indent)
			}
		}
	case BlockQuote:
		if b.Quote != nil {
			for i := range b.Quote.Blocks {
				writeBlockPlain(buf, &b.Quote.Blocks[i], indent+"    ")
			}
		}
	case BlockLineGroup:
		if b.Group != nil {
			for _, line := range b.Group.Lines {
				writeIndented(buf, indent+"    ", inlinesPlain(line))
			}
			buf.WriteByte('\n')
		}
	case BlockEmptyLine:
		buf.WriteByte('\n')
	case BlockRaw:
		// target specific markup has no plain text rendering
	}
}

// writeUnderlined writes text with an underline sized to its display width,
// so wide (CJK) characters underline correctly.
func writeUnderlined(buf *strings.Builder, text string, underline byte) {
	buf.WriteString(text)
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(string(underline), max(runewidth.StringWidth(text), 1)))
	buf.WriteByte('\n')
}

func writeIndented(buf *strings.Builder, indent, text string) {
	for line := range strings.SplitSeq(text, "\n") {
		buf.WriteString(indent)
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

// inlinesPlain is like InlinesText but keeps break markers as newlines.
func inlinesPlain(ins []Inline) string {
	var buf strings.Builder
	for i := range ins {
		if ins[i].IsBreak() {
			buf.WriteByte('\n')
			continue
		}
		buf.WriteString(ins[i].AsText())
	}
	return buf.String()
}
