package verse

import "verso/doc"

// Fallback rendering for targets with no verse vocabulary: the title, when
// present, becomes an emphasized paragraph and the segmented content rides
// inside a block quote untouched.
func renderFallback(content []doc.Block, opts Options) []doc.Block {
	var out []doc.Block
	if opts.HasTitle {
		out = append(out, doc.Block{
			Kind: doc.BlockParagraph,
			Para: &doc.Paragraph{Text: []doc.Inline{doc.Emph(doc.Text(opts.Title))}},
		})
	}
	out = append(out, doc.Block{
		Kind:  doc.BlockQuote,
		Quote: &doc.Quote{Blocks: content},
	})
	return out
}
