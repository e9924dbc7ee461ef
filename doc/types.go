// Package doc defines the internal document model: a closed set of block and
// inline node kinds plus serialization of that model to supported output
// targets. The model is deliberately small - it only needs to distinguish
// paragraph-like content, line-break-like inline markers and opaque other
// nodes that pass through transformations unmodified.
package doc

import (
	"strings"

	"golang.org/x/text/language"
)

// Document is the root of the parsed tree.
type Document struct {
	Title  string
	Lang   language.Tag
	Blocks []Block
}

// BlockKind distinguishes the different kinds of block content.
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockHeading   BlockKind = "heading"
	BlockDiv       BlockKind = "div"
	BlockQuote     BlockKind = "quote"
	BlockLineGroup BlockKind = "linegroup"
	BlockRaw       BlockKind = "raw"
	BlockEmptyLine BlockKind = "empty-line"
)

// Block stores a single piece of block content, keeping the original ordering.
type Block struct {
	Kind    BlockKind
	Para    *Paragraph
	Heading *Heading
	Div     *Div
	Quote   *Quote
	Group   *LineGroup
	Raw     *RawBlock
}

// AsPlainText extracts plain text from the block based on its kind.
func (b *Block) AsPlainText() string {
	switch b.Kind {
	case BlockParagraph:
		if b.Para != nil {
			return b.Para.AsPlainText()
		}
	case BlockHeading:
		if b.Heading != nil {
			return InlinesText(b.Heading.Text)
		}
	case BlockDiv:
		if b.Div != nil {
			return joinBlocksText(b.Div.Blocks)
		}
	case BlockQuote:
		if b.Quote != nil {
			return joinBlocksText(b.Quote.Blocks)
		}
	case BlockLineGroup:
		if b.Group != nil {
			return b.Group.AsPlainText()
		}
	}
	return ""
}

func joinBlocksText(blocks []Block) string {
	var buf strings.Builder
	for i := range blocks {
		text := blocks[i].AsPlainText()
		if text != "" {
			if buf.Len() > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(text)
		}
	}
	return strings.TrimSpace(buf.String())
}

// Paragraph is a run of inline content, possibly with soft or hard line
// breaks inside.
type Paragraph struct {
	ID    string
	Style string
	Text  []Inline
}

// AsPlainText returns the plain text content of the paragraph by extracting
// text from all segments.
func (p *Paragraph) AsPlainText() string {
	return InlinesText(p.Text)
}

// Heading is a section heading, level 1 is the most prominent.
type Heading struct {
	ID    string
	Level int
	Text  []Inline
}

// Div is a generic attributed container. Class list and attribute map drive
// special-cased transformations, most importantly verse handling.
type Div struct {
	ID      string
	Lang    string
	Classes []string
	Attrs   map[string]string
	Blocks  []Block
}

func (d *Div) HasClass(name string) bool {
	for _, c := range d.Classes {
		if c == name {
			return true
		}
	}
	return false
}

// Attr returns named attribute value or empty string when it is not present.
func (d *Div) Attr(name string) string {
	if d.Attrs == nil {
		return ""
	}
	return d.Attrs[name]
}

// Quote is a block quotation.
type Quote struct {
	ID     string
	Blocks []Block
}

// Line is one verse line - inline content with no internal break markers.
type Line []Inline

// LineGroup groups lines that are rendered together - a poem stanza.
type LineGroup struct {
	Lines []Line
}

// AsPlainText extracts plain text from all lines of the group.
func (g *LineGroup) AsPlainText() string {
	var buf strings.Builder
	for _, line := range g.Lines {
		text := InlinesText(line)
		if text != "" {
			if buf.Len() > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(text)
		}
	}
	return strings.TrimSpace(buf.String())
}

// Raw output formats.
const (
	RawFormatHTML  = "html"
	RawFormatLaTeX = "latex"
)

// RawBlock carries already serialized markup for one specific output target.
// Writers for other targets skip it.
type RawBlock struct {
	Format string
	Text   string
}

// RawHTML wraps an HTML fragment into a block.
func RawHTML(text string) Block {
	return Block{Kind: BlockRaw, Raw: &RawBlock{Format: RawFormatHTML, Text: text}}
}

// RawLaTeX wraps a LaTeX fragment into a block.
func RawLaTeX(text string) Block {
	return Block{Kind: BlockRaw, Raw: &RawBlock{Format: RawFormatLaTeX, Text: text}}
}

// InlineKind distinguishes different inline content types.
type InlineKind string

const (
	InlineText          InlineKind = "text"
	InlineEmphasis      InlineKind = "emphasis"
	InlineStrong        InlineKind = "strong"
	InlineCode          InlineKind = "code"
	InlineSub           InlineKind = "sub"
	InlineSup           InlineKind = "sup"
	InlineStrikethrough InlineKind = "strikethrough"
	InlineLink          InlineKind = "link"
	InlineSpan          InlineKind = "span"
	InlineLineBreak     InlineKind = "linebreak"
	InlineSoftBreak     InlineKind = "softbreak"
)

// Inline stores text or styled/linked inline content. Break kinds carry no
// payload - they are pure separators.
type Inline struct {
	Kind     InlineKind
	Text     string
	Href     string
	Style    string
	Children []Inline
}

// IsBreak reports whether the inline is a line separator of either kind.
func (in *Inline) IsBreak() bool {
	return in.Kind == InlineLineBreak || in.Kind == InlineSoftBreak
}

// AsText returns the plain text content of the inline, recursively extracting
// text from children. Breaks read as a single space.
func (in *Inline) AsText() string {
	if in.IsBreak() {
		return " "
	}
	var buf strings.Builder
	buf.WriteString(in.Text)
	for i := range in.Children {
		buf.WriteString(in.Children[i].AsText())
	}
	return buf.String()
}

// InlinesText stringifies a sequence of inlines to plain text.
func InlinesText(ins []Inline) string {
	var buf strings.Builder
	for i := range ins {
		buf.WriteString(ins[i].AsText())
	}
	return strings.TrimSpace(buf.String())
}

// Text builds a plain text inline.
func Text(s string) Inline {
	return Inline{Kind: InlineText, Text: s}
}

// Emph wraps children into an emphasis inline.
func Emph(children ...Inline) Inline {
	return Inline{Kind: InlineEmphasis, Children: children}
}
