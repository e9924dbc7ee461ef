package doc

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
)

// LaTeX output. Inline conversion is exported separately because the verse
// transformation serializes individual lines in isolation.

const latexPreamble = `\documentclass{article}
\usepackage{verse}
\usepackage[normalem]{ulem}
\usepackage{hyperref}
`

// WriteLaTeX serializes the document as a standalone LaTeX file.
func WriteLaTeX(w io.Writer, d *Document) error {
	var buf strings.Builder

	buf.WriteString(latexPreamble)
	if d.Lang != language.Und {
		fmt.Fprintf(&buf, "%% language: %s\n", d.Lang.String())
	}
	buf.WriteString("\\begin{document}\n")
	if d.Title != "" {
		fmt.Fprintf(&buf, "\\title{%s}\n\\maketitle\n", EscapeLaTeX(d.Title))
	}

	for i := range d.Blocks {
		writeBlockLaTeX(&buf, &d.Blocks[i])
	}

	buf.WriteString("\\end{document}\n")

	_, err := io.WriteString(w, buf.String())
	return err
}

var sectionCommands = []string{"section", "subsection", "subsubsection", "paragraph", "subparagraph", "subparagraph"}

func writeBlockLaTeX(buf *strings.Builder, b *Block) {
	switch b.Kind {
	case BlockRaw:
		if b.Raw != nil && b.Raw.Format == RawFormatLaTeX {
			buf.WriteString(b.Raw.Text)
			buf.WriteString("\n\n")
		}
	case BlockParagraph:
		if b.Para != nil {
			buf.WriteString(InlinesLaTeX(b.Para.Text))
			buf.WriteString("\n\n")
		}
	case BlockHeading:
		if b.Heading != nil {
			level := min(max(b.Heading.Level, 1), len(sectionCommands))
			fmt.Fprintf(buf, "\\%s*{%s}\n\n", sectionCommands[level-1], InlinesLaTeX(b.Heading.Text))
		}
	case BlockDiv:
		if b.Div != nil {
			// generic container carries no own typesetting
			for i := range b.Div.Blocks {
				writeBlockLaTeX(buf, &b.Div.Blocks[i])
			}
		}
	case BlockQuote:
		if b.Quote != nil {
			buf.WriteString("\\begin{quote}\n")
			for i := range b.Quote.Blocks {
				writeBlockLaTeX(buf, &b.Quote.Blocks[i])
			}
			buf.WriteString("\\end{quote}\n\n")
		}
	case BlockLineGroup:
		if b.Group != nil {
			buf.WriteString("\\begin{verse}\n")
			for _, line := range b.Group.Lines {
				buf.WriteString(InlinesLaTeX(line))
				buf.WriteString(" \\\\\n")
			}
			buf.WriteString("\\end{verse}\n\n")
		}
	case BlockEmptyLine:
		buf.WriteString("\\vspace{\\baselineskip}\n\n")
	}
}

// InlinesLaTeX converts inline content to LaTeX text with no trailing newline.
func InlinesLaTeX(ins []Inline) string {
	var buf strings.Builder
	for i := range ins {
		appendInlineLaTeX(&buf, &ins[i])
	}
	return strings.TrimRight(buf.String(), "\n")
}

func appendInlineLaTeX(buf *strings.Builder, in *Inline) {
	wrap := func(command string) {
		buf.WriteString(command)
		buf.WriteByte('{')
		for i := range in.Children {
			appendInlineLaTeX(buf, &in.Children[i])
		}
		buf.WriteByte('}')
	}

	switch in.Kind {
	case InlineText:
		buf.WriteString(EscapeLaTeX(in.Text))
	case InlineSoftBreak:
		buf.WriteByte('\n')
	case InlineLineBreak:
		buf.WriteString(" \\\\\n")
	case InlineEmphasis:
		wrap("\\emph")
	case InlineStrong:
		wrap("\\textbf")
	case InlineCode:
		wrap("\\texttt")
	case InlineSub:
		wrap("\\textsubscript")
	case InlineSup:
		wrap("\\textsuperscript")
	case InlineStrikethrough:
		wrap("\\sout")
	case InlineLink:
		if in.Href != "" {
			fmt.Fprintf(buf, "\\href{%s}", escapeLaTeXURL(in.Href))
			buf.WriteByte('{')
			for i := range in.Children {
				appendInlineLaTeX(buf, &in.Children[i])
			}
			buf.WriteByte('}')
		} else {
			wrap("")
		}
	case InlineSpan:
		// named styles have no LaTeX mapping, keep content grouped
		wrap("")
	}
}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`%`, `\%`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX makes arbitrary text safe for LaTeX body content.
func EscapeLaTeX(text string) string {
	return latexEscaper.Replace(text)
}

var latexURLEscaper = strings.NewReplacer(
	`%`, `\%`,
	`#`, `\#`,
	`{`, `\{`,
	`}`, `\}`,
	`\`, ``,
)

func escapeLaTeXURL(url string) string {
	return latexURLEscaper.Replace(url)
}
