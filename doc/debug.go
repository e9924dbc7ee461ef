package doc

import (
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"verso/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the parsed document. It exists solely for
// manual inspection during debugging.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.Line(0, "Document title=%q lang=%q", d.Title, d.Lang.String())
	for i := range d.Blocks {
		tw.block(1, &d.Blocks[i], i)
	}
	return tw.String()
}

func (tw treeWriter) block(depth int, b *Block, idx int) {
	switch b.Kind {
	case BlockParagraph:
		if b.Para != nil {
			tw.Line(depth, "Paragraph[%d] id=%q style=%q", idx, b.Para.ID, b.Para.Style)
			tw.inlines(depth+1, b.Para.Text)
		}
	case BlockHeading:
		if b.Heading != nil {
			tw.Line(depth, "Heading[%d] level=%d id=%q", idx, b.Heading.Level, b.Heading.ID)
			tw.inlines(depth+1, b.Heading.Text)
		}
	case BlockDiv:
		if b.Div != nil {
			tw.Line(depth, "Div[%d] id=%q classes=%q", idx, b.Div.ID, strings.Join(b.Div.Classes, " "))
			for _, k := range sortedAttrKeys(b.Div.Attrs) {
				tw.Line(depth+1, "Attr[%q]=%q", k, b.Div.Attrs[k])
			}
			for i := range b.Div.Blocks {
				tw.block(depth+1, &b.Div.Blocks[i], i)
			}
		}
	case BlockQuote:
		if b.Quote != nil {
			tw.Line(depth, "Quote[%d] id=%q", idx, b.Quote.ID)
			for i := range b.Quote.Blocks {
				tw.block(depth+1, &b.Quote.Blocks[i], i)
			}
		}
	case BlockLineGroup:
		if b.Group != nil {
			tw.Line(depth, "LineGroup[%d] lines=%d", idx, len(b.Group.Lines))
			for i, line := range b.Group.Lines {
				tw.Line(depth+1, "Line[%d]", i)
				tw.inlines(depth+2, line)
			}
		}
	case BlockRaw:
		if b.Raw != nil {
			tw.Line(depth, "Raw[%d] format=%q bytes=%d", idx, b.Raw.Format, len(b.Raw.Text))
		}
	case BlockEmptyLine:
		tw.Line(depth, "EmptyLine[%d]", idx)
	}
}

func (tw treeWriter) inlines(depth int, ins []Inline) {
	for i := range ins {
		in := &ins[i]
		switch in.Kind {
		case InlineText:
			tw.TextBlock(depth, "Text", in.Text)
		case InlineLineBreak, InlineSoftBreak:
			tw.Line(depth, "%s", string(in.Kind))
		default:
			label := string(in.Kind)
			if in.Href != "" {
				label += " href=" + in.Href
			}
			if in.Style != "" {
				label += " style=" + in.Style
			}
			tw.Line(depth, "%s", label)
			tw.inlines(depth+1, in.Children)
		}
	}
}

// sortedAttrKeys returns attribute names in natural order for deterministic
// output.
func sortedAttrKeys(attrs map[string]string) []string {
	if len(attrs) == 0 {
		return nil
	}
	keys := slices.Collect(maps.Keys(attrs))
	sort.Sort(natural.StringSlice(keys))
	return keys
}
