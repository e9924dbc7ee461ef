package doc

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/language"
)

// XML parsing for the document markup. We want exhaustive parsing: every
// unexpected tag is reported, nothing is guessed. The dialect is small:
//
//	<document lang="..." title="...">
//	  <p>, <h1>..<h6>, <div>, <blockquote>, <empty-line/>, <raw format="...">
//	</document>
//
// with <em>, <strong>, <code>, <sub>, <sup>, <del>, <a href>, <span class>
// and <br/> inside paragraph-like content. A literal newline inside character
// data acts as a soft line break.

// Parse reads XML from r and constructs the typed document tree.
func Parse(r io.Reader, log *zap.Logger) (*Document, error) {
	tree := etree.NewDocument()
	// tolerate legacy encodings the way browsers do
	tree.ReadSettings = etree.ReadSettings{CharsetReader: charset.NewReaderLabel}

	if _, err := tree.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}

	root := tree.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	if root.Tag != "document" {
		return nil, fmt.Errorf("unexpected root element %q", root.Tag)
	}

	d := &Document{
		Title: strings.TrimSpace(root.SelectAttrValue("title", "")),
		Lang:  parseDocLang(root.SelectAttrValue("lang", ""), log),
	}
	d.Blocks = parseBlocks(root, log)
	return d, nil
}

func parseDocLang(in string, log *zap.Logger) language.Tag {
	lang := strings.TrimSpace(in)
	if lang == "" {
		return language.Und
	}
	tag, err := language.Parse(lang)
	if err != nil {
		log.Warn("Unable to parse document language", zap.String("lang", lang))
		return language.Und
	}
	return tag
}

func parseBlocks(el *etree.Element, log *zap.Logger) []Block {
	var blocks []Block
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "p":
			blocks = append(blocks, Block{Kind: BlockParagraph, Para: parseParagraph(child, log)})
		case "h1", "h2", "h3", "h4", "h5", "h6":
			blocks = append(blocks, Block{Kind: BlockHeading, Heading: &Heading{
				ID:    child.SelectAttrValue("id", ""),
				Level: int(child.Tag[1] - '0'),
				Text:  parseInlines(child, log),
			}})
		case "div":
			blocks = append(blocks, Block{Kind: BlockDiv, Div: parseDiv(child, log)})
		case "blockquote":
			blocks = append(blocks, Block{Kind: BlockQuote, Quote: &Quote{
				ID:     child.SelectAttrValue("id", ""),
				Blocks: parseBlocks(child, log),
			}})
		case "empty-line":
			blocks = append(blocks, Block{Kind: BlockEmptyLine})
		case "raw":
			format := child.SelectAttrValue("format", "")
			if format != RawFormatHTML && format != RawFormatLaTeX {
				log.Warn("Unknown raw block format, ignoring", zap.String("format", format))
				continue
			}
			blocks = append(blocks, Block{Kind: BlockRaw, Raw: &RawBlock{
				Format: format,
				Text:   strings.TrimSpace(child.Text()),
			}})
		default:
			log.Warn("Unexpected block tag, ignoring", zap.String("parent", el.Tag), zap.String("tag", child.Tag))
		}
	}
	return blocks
}

func parseParagraph(el *etree.Element, log *zap.Logger) *Paragraph {
	return &Paragraph{
		ID:    el.SelectAttrValue("id", ""),
		Style: el.SelectAttrValue("class", ""),
		Text:  parseInlines(el, log),
	}
}

func parseDiv(el *etree.Element, log *zap.Logger) *Div {
	div := &Div{
		ID:   el.SelectAttrValue("id", ""),
		Lang: el.SelectAttrValue("lang", ""),
	}
	for _, attr := range el.Attr {
		switch attr.Key {
		case "id", "lang":
		case "class":
			div.Classes = strings.Fields(attr.Value)
		default:
			if div.Attrs == nil {
				div.Attrs = make(map[string]string)
			}
			div.Attrs[attr.Key] = attr.Value
		}
	}
	div.Blocks = parseBlocks(el, log)
	return div
}

func parseInlines(el *etree.Element, log *zap.Logger) []Inline {
	var ins []Inline
	for _, child := range el.Child {
		switch node := child.(type) {
		case *etree.CharData:
			ins = appendTextRuns(ins, node.Data)
		case *etree.Element:
			ins = appendInlineElement(ins, node, log)
		}
	}
	return normalizeSoftBreaks(ins)
}

func appendInlineElement(ins []Inline, el *etree.Element, log *zap.Logger) []Inline {
	switch el.Tag {
	case "br":
		return append(ins, Inline{Kind: InlineLineBreak})
	case "em":
		return append(ins, Inline{Kind: InlineEmphasis, Children: parseInlines(el, log)})
	case "strong":
		return append(ins, Inline{Kind: InlineStrong, Children: parseInlines(el, log)})
	case "code":
		return append(ins, Inline{Kind: InlineCode, Children: parseInlines(el, log)})
	case "sub":
		return append(ins, Inline{Kind: InlineSub, Children: parseInlines(el, log)})
	case "sup":
		return append(ins, Inline{Kind: InlineSup, Children: parseInlines(el, log)})
	case "del":
		return append(ins, Inline{Kind: InlineStrikethrough, Children: parseInlines(el, log)})
	case "a":
		return append(ins, Inline{
			Kind:     InlineLink,
			Href:     el.SelectAttrValue("href", ""),
			Children: parseInlines(el, log),
		})
	case "span":
		return append(ins, Inline{
			Kind:     InlineSpan,
			Style:    el.SelectAttrValue("class", ""),
			Children: parseInlines(el, log),
		})
	default:
		log.Warn("Unexpected inline tag, ignoring", zap.String("tag", el.Tag))
		return ins
	}
}

// appendTextRuns converts one character data chunk into text inlines. A chunk
// without newlines is kept verbatim (inter-element spacing is significant).
// A chunk with newlines is split into horizontally trimmed runs with a soft
// break for every newline - markup indentation around the runs is dropped by
// normalizeSoftBreaks afterwards.
func appendTextRuns(ins []Inline, data string) []Inline {
	if !strings.ContainsRune(data, '\n') {
		if data != "" {
			ins = append(ins, Text(data))
		}
		return ins
	}
	for i, piece := range strings.Split(data, "\n") {
		if i > 0 {
			ins = append(ins, Inline{Kind: InlineSoftBreak})
		}
		piece = strings.Trim(piece, " \t\r")
		if piece != "" {
			ins = append(ins, Text(piece))
		}
	}
	return ins
}

// normalizeSoftBreaks drops leading/trailing soft breaks and soft breaks
// adjacent to other breaks. XML source formatting cannot express an
// intentional blank line - that is what explicit <br/> markers are for -
// so leftover newline artifacts are noise. Hard breaks are never touched.
func normalizeSoftBreaks(ins []Inline) []Inline {
	out := ins[:0]
	for i, in := range ins {
		if in.Kind == InlineSoftBreak {
			if len(out) == 0 || out[len(out)-1].IsBreak() {
				continue
			}
			if i+1 < len(ins) && ins[i+1].Kind == InlineLineBreak {
				continue
			}
		}
		out = append(out, in)
	}
	for len(out) > 0 && out[len(out)-1].Kind == InlineSoftBreak {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
