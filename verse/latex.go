package verse

import (
	"fmt"
	"strings"

	"verso/doc"
)

// Print rendering: one raw block of verse package directives. Each line is
// serialized in isolation and terminated with a hard line end; the width of
// the first line of the first stanza parameterizes the environment so
// wrapped continuations hang past the line's visual start.

func renderLaTeX(content []doc.Block, opts Options) []doc.Block {
	stanzas := collectStanzas(content)

	var buf strings.Builder
	if opts.HasTitle {
		fmt.Fprintf(&buf, "\\poemtitle{%s}\n", doc.EscapeLaTeX(opts.Title))
	}

	// measure hanging indent width from a sample line; without content the
	// environment opens unparameterized
	measured := false
	if len(stanzas) > 0 && len(stanzas[0].Lines) > 0 {
		fmt.Fprintf(&buf, "\\settowidth{\\versewidth}{%s}\n", doc.InlinesLaTeX(stanzas[0].Lines[0]))
		measured = true
	}
	if measured {
		buf.WriteString("\\begin{verse}[\\versewidth]\n")
	} else {
		buf.WriteString("\\begin{verse}\n")
	}

	if opts.LineNumbers != nil {
		fmt.Fprintf(&buf, "\\poemlines{%d}\n", *opts.LineNumbers)
		if opts.NumberSide == NumberLeft {
			buf.WriteString("\\verselinenumbersleft\n")
		}
		if opts.FirstLineNum != nil {
			fmt.Fprintf(&buf, "\\setverselinenums{%d}{%d}\n", *opts.FirstLineNum, opts.StartNumsAt)
		}
	}
	if opts.VIndent != "" {
		fmt.Fprintf(&buf, "\\setlength{\\vindent}{%s}\n", doc.EscapeLaTeX(opts.VIndent))
	}

	for i, stanza := range stanzas {
		if i > 0 {
			buf.WriteString("\\vspace{\\stanzaskip}\n")
		}
		for _, line := range stanza.Lines {
			text := doc.InlinesLaTeX(line)
			if text == "" {
				// a blank verse line still needs something to end
				text = "~"
			}
			buf.WriteString(text)
			buf.WriteString(" \\\\\n")
		}
	}

	if opts.LineNumbers != nil {
		// terminate numbering before the environment closes
		buf.WriteString("\\poemlines{0}\n")
	}
	buf.WriteString("\\end{verse}")

	return []doc.Block{doc.RawLaTeX(buf.String())}
}

// collectStanzas extracts stanza units in order, skipping pass-through
// blocks which have no print rendering.
func collectStanzas(content []doc.Block) []*doc.LineGroup {
	var stanzas []*doc.LineGroup
	for i := range content {
		if content[i].Kind == doc.BlockLineGroup && content[i].Group != nil {
			stanzas = append(stanzas, content[i].Group)
		}
	}
	return stanzas
}
