package verse

import (
	"verso/doc"
)

// Segment converts the verse container's children into renderable content:
// every paragraph is replaced by one stanza (line group), every other block
// passes through unchanged and in place. Stanza boundaries therefore come
// straight from the source - separate paragraphs, or paragraphs separated by
// non-paragraph markers, become separate stanzas.
func Segment(blocks []doc.Block) []doc.Block {
	out := make([]doc.Block, 0, len(blocks))
	for i := range blocks {
		b := &blocks[i]
		if b.Kind != doc.BlockParagraph || b.Para == nil {
			out = append(out, *b)
			continue
		}
		if group := segmentParagraph(b.Para); group != nil {
			out = append(out, doc.Block{Kind: doc.BlockLineGroup, Group: group})
		}
	}
	return out
}

// segmentParagraph splits paragraph content on break markers. Breaks are
// separators and never appear inside a line. The policy for empty lines is
// symmetric: every break closes the current line, so consecutive breaks
// produce an empty line and a trailing break produces a trailing empty line -
// both must later render as blank verse lines. A paragraph with no inline
// content at all yields no stanza.
func segmentParagraph(p *doc.Paragraph) *doc.LineGroup {
	if len(p.Text) == 0 {
		return nil
	}

	group := &doc.LineGroup{}
	line := doc.Line{}
	for i := range p.Text {
		if p.Text[i].IsBreak() {
			group.Lines = append(group.Lines, line)
			line = doc.Line{}
			continue
		}
		line = append(line, p.Text[i])
	}
	group.Lines = append(group.Lines, line)
	return group
}
