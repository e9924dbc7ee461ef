package doc

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/language"
)

// XHTML output. Structured blocks are built with etree so escaping is always
// correct; raw html blocks are spliced into the page verbatim, which is why
// container blocks are written tag-by-tag instead of through one etree tree.

// WriteHTML serializes the document as a standalone XHTML page. When
// stylesheetHref is not empty a stylesheet link is added to the head.
func WriteHTML(w io.Writer, d *Document, stylesheetHref string) error {
	var buf strings.Builder

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	buf.WriteString(`<html xmlns="http://www.w3.org/1999/xhtml"`)
	if d.Lang != language.Und {
		fmt.Fprintf(&buf, ` xml:lang=%q`, d.Lang.String())
	}
	buf.WriteString(">\n<head>\n")
	buf.WriteString(`<meta http-equiv="Content-Type" content="text/html; charset=utf-8"/>` + "\n")
	if stylesheetHref != "" {
		fmt.Fprintf(&buf, `<link rel="stylesheet" type="text/css" href=%q/>`+"\n", stylesheetHref)
	}
	title := d.Title
	if title == "" {
		title = "Untitled"
	}
	fmt.Fprintf(&buf, "<title>%s</title>\n</head>\n<body>\n", html.EscapeString(title))

	for i := range d.Blocks {
		writeBlockHTML(&buf, &d.Blocks[i])
	}

	buf.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, buf.String())
	return err
}

func writeBlockHTML(buf *strings.Builder, b *Block) {
	switch b.Kind {
	case BlockRaw:
		if b.Raw != nil && b.Raw.Format == RawFormatHTML {
			buf.WriteString(b.Raw.Text)
			buf.WriteByte('\n')
		}
	case BlockDiv:
		if b.Div == nil {
			return
		}
		buf.WriteString(divOpenTag(b.Div))
		buf.WriteByte('\n')
		for i := range b.Div.Blocks {
			writeBlockHTML(buf, &b.Div.Blocks[i])
		}
		buf.WriteString("</div>\n")
	case BlockQuote:
		if b.Quote == nil {
			return
		}
		if b.Quote.ID != "" {
			fmt.Fprintf(buf, "<blockquote id=%q>\n", html.EscapeString(b.Quote.ID))
		} else {
			buf.WriteString("<blockquote>\n")
		}
		for i := range b.Quote.Blocks {
			writeBlockHTML(buf, &b.Quote.Blocks[i])
		}
		buf.WriteString("</blockquote>\n")
	default:
		if el := blockElement(b); el != nil {
			buf.WriteString(ElementString(el))
			buf.WriteByte('\n')
		}
	}
}

func divOpenTag(div *Div) string {
	var buf strings.Builder
	buf.WriteString("<div")
	if div.ID != "" {
		fmt.Fprintf(&buf, " id=%q", html.EscapeString(div.ID))
	}
	if len(div.Classes) > 0 {
		fmt.Fprintf(&buf, " class=%q", html.EscapeString(strings.Join(div.Classes, " ")))
	}
	if div.Lang != "" {
		fmt.Fprintf(&buf, " xml:lang=%q", html.EscapeString(div.Lang))
	}
	for _, key := range sortedAttrKeys(div.Attrs) {
		fmt.Fprintf(&buf, " data-%s=%q", key, html.EscapeString(div.Attrs[key]))
	}
	buf.WriteString(">")
	return buf.String()
}

// blockElement builds an etree element for leaf block kinds.
func blockElement(b *Block) *etree.Element {
	switch b.Kind {
	case BlockParagraph:
		if b.Para == nil {
			return nil
		}
		p := etree.NewElement("p")
		if b.Para.ID != "" {
			p.CreateAttr("id", b.Para.ID)
		}
		if b.Para.Style != "" {
			p.CreateAttr("class", b.Para.Style)
		}
		AppendInlinesHTML(p, b.Para.Text)
		return p
	case BlockHeading:
		if b.Heading == nil {
			return nil
		}
		level := min(max(b.Heading.Level, 1), 6)
		h := etree.NewElement(fmt.Sprintf("h%d", level))
		if b.Heading.ID != "" {
			h.CreateAttr("id", b.Heading.ID)
		}
		AppendInlinesHTML(h, b.Heading.Text)
		return h
	case BlockLineGroup:
		if b.Group == nil {
			return nil
		}
		return LineGroupElement(b.Group)
	case BlockEmptyLine:
		div := etree.NewElement("div")
		div.CreateAttr("class", "emptyline")
		return div
	}
	return nil
}

// LineGroupElement renders a stanza as nested div containers with the fixed
// class vocabulary shared with the verse transformation.
func LineGroupElement(g *LineGroup) *etree.Element {
	stanza := etree.NewElement("div")
	stanza.CreateAttr("class", "stanza")
	for _, line := range g.Lines {
		lineEl := stanza.CreateElement("div")
		lineEl.CreateAttr("class", "verse-line")
		AppendInlinesHTML(lineEl, line)
	}
	return stanza
}

// AppendInlinesHTML appends inline content to the given element.
func AppendInlinesHTML(parent *etree.Element, ins []Inline) {
	for i := range ins {
		appendInlineHTML(parent, &ins[i])
	}
}

func appendInlineHTML(parent *etree.Element, in *Inline) {
	switch in.Kind {
	case InlineText:
		appendInlineText(parent, in.Text)
	case InlineSoftBreak:
		appendInlineText(parent, "\n")
	case InlineLineBreak:
		parent.CreateElement("br")
	case InlineEmphasis:
		AppendInlinesHTML(parent.CreateElement("em"), in.Children)
	case InlineStrong:
		AppendInlinesHTML(parent.CreateElement("strong"), in.Children)
	case InlineCode:
		AppendInlinesHTML(parent.CreateElement("code"), in.Children)
	case InlineSub:
		AppendInlinesHTML(parent.CreateElement("sub"), in.Children)
	case InlineSup:
		AppendInlinesHTML(parent.CreateElement("sup"), in.Children)
	case InlineStrikethrough:
		AppendInlinesHTML(parent.CreateElement("del"), in.Children)
	case InlineLink:
		a := parent.CreateElement("a")
		if in.Href != "" {
			a.CreateAttr("href", in.Href)
		}
		AppendInlinesHTML(a, in.Children)
	case InlineSpan:
		span := parent.CreateElement("span")
		if in.Style != "" {
			span.CreateAttr("class", in.Style)
		}
		AppendInlinesHTML(span, in.Children)
	}
}

// appendInlineText attaches character data after the last child element, if
// any, so mixed content keeps its original ordering.
func appendInlineText(parent *etree.Element, text string) {
	children := parent.ChildElements()
	if len(children) == 0 {
		parent.SetText(parent.Text() + text)
		return
	}
	last := children[len(children)-1]
	last.SetTail(last.Tail() + text)
}

// ElementString serializes a detached element to markup text.
func ElementString(el *etree.Element) string {
	tree := etree.NewDocument()
	tree.SetRoot(el)
	out, err := tree.WriteToString()
	if err != nil {
		// strings.Builder never fails
		return ""
	}
	return strings.TrimRight(out, "\n")
}
