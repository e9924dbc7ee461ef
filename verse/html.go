package verse

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"

	"verso/doc"
)

// Screen rendering: raw markup fragments forming one nesting - an outer
// container, an optional title, one container per stanza wrapping its lines.
// Pass-through blocks that are not stanzas are not rendered on screen.

func renderHTML(content []doc.Block, opts Options) []doc.Block {
	out := make([]doc.Block, 0, len(content)+3)
	out = append(out, doc.RawHTML(containerOpenTag(opts)))

	if opts.HasTitle {
		title := etree.NewElement("div")
		title.CreateAttr("class", "verse-title")
		title.SetText(opts.Title)
		out = append(out, doc.RawHTML(doc.ElementString(title)))
	}

	for i := range content {
		if content[i].Kind != doc.BlockLineGroup || content[i].Group == nil {
			continue
		}
		stanza := doc.LineGroupElement(content[i].Group)
		out = append(out, doc.RawHTML(doc.ElementString(stanza)))
	}

	out = append(out, doc.RawHTML("</div>"))
	return out
}

func containerOpenTag(opts Options) string {
	classes := []string{"verse"}
	if opts.LineNumbers != nil {
		classes = append(classes, "line-numbered", "linenums-"+string(opts.NumberSide))
	}

	var buf strings.Builder
	buf.WriteString("<div")
	if opts.HasTitle {
		// slugified title makes the verse linkable
		if id := slug.Make(opts.Title); id != "" {
			fmt.Fprintf(&buf, " id=%q", id)
		}
	}
	fmt.Fprintf(&buf, " class=%q", strings.Join(classes, " "))
	fmt.Fprintf(&buf, ` style="counter-reset: verse-line %d;"`, opts.StartNumsAt-1)
	buf.WriteString(">")
	return buf.String()
}
