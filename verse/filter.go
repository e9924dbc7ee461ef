package verse

import (
	"go.uber.org/zap"

	"verso/config"
	"verso/doc"
)

// ClassName marks a div as a verse container.
const ClassName = "verse"

// Transform rewrites a single verse container into target specific
// replacement blocks. It reports false when the block is not a verse
// container, leaving it for the caller to handle.
func Transform(b *doc.Block, target config.OutputFmt) ([]doc.Block, bool) {
	if b.Kind != doc.BlockDiv || b.Div == nil || !b.Div.HasClass(ClassName) {
		return nil, false
	}

	opts := ResolveOptions(b.Div.Attrs)
	content := Segment(b.Div.Blocks)

	switch {
	case target.Screen():
		return renderHTML(content, opts), true
	case target.Print():
		return renderLaTeX(content, opts), true
	default:
		return renderFallback(content, opts), true
	}
}

// Apply walks the document and replaces every verse container in place,
// returning the number of replacements. Children of a rewritten container
// are never revisited - the replacement is final output for its target.
func Apply(d *doc.Document, target config.OutputFmt, log *zap.Logger) int {
	count := applyBlocks(&d.Blocks, target, log)
	if count > 0 {
		log.Debug("rewrote verse containers", zap.Int("count", count), zap.Stringer("target", target))
	}
	return count
}

func applyBlocks(blocks *[]doc.Block, target config.OutputFmt, log *zap.Logger) int {
	count := 0
	out := make([]doc.Block, 0, len(*blocks))
	for i := range *blocks {
		b := &(*blocks)[i]
		if replacement, ok := Transform(b, target); ok {
			out = append(out, replacement...)
			count++
			continue
		}
		switch b.Kind {
		case doc.BlockDiv:
			if b.Div != nil {
				count += applyBlocks(&b.Div.Blocks, target, log)
			}
		case doc.BlockQuote:
			if b.Quote != nil {
				count += applyBlocks(&b.Quote.Blocks, target, log)
			}
		}
		out = append(out, *b)
	}
	*blocks = out
	return count
}
