package verse

import (
	"strings"
	"testing"

	"verso/doc"
)

func renderLaTeXText(t *testing.T, content []doc.Block, opts Options) string {
	t.Helper()
	out := renderLaTeX(content, opts)
	if len(out) != 1 || out[0].Kind != doc.BlockRaw || out[0].Raw == nil {
		t.Fatalf("expected one raw block, got %v", out)
	}
	if out[0].Raw.Format != doc.RawFormatLaTeX {
		t.Fatalf("expected latex raw block, got %s", out[0].Raw.Format)
	}
	return out[0].Raw.Text
}

func TestRenderLaTeX(t *testing.T) {
	t.Run("two stanzas", func(t *testing.T) {
		content := Segment([]doc.Block{
			para(doc.Text("Line A"), br(), doc.Text("Line B")),
			para(doc.Text("Line C")),
		})
		got := renderLaTeXText(t, content, ResolveOptions(map[string]string{"title": "Ode"}))

		if !strings.Contains(got, "\\poemtitle{Ode}") {
			t.Errorf("missing poem title in %s", got)
		}
		if !strings.Contains(got, "\\settowidth{\\versewidth}{Line A}") {
			t.Errorf("width should be measured from the first line, got %s", got)
		}
		if !strings.Contains(got, "\\begin{verse}[\\versewidth]") {
			t.Errorf("missing parameterized environment in %s", got)
		}
		if n := strings.Count(got, "\\vspace{\\stanzaskip}"); n != 1 {
			t.Errorf("expected exactly 1 stanza separator, got %d in %s", n, got)
		}
		if n := strings.Count(got, " \\\\\n"); n != 3 {
			t.Errorf("expected 3 line ends, got %d in %s", n, got)
		}
		if !strings.HasSuffix(got, "\\end{verse}") {
			t.Errorf("environment not closed: %s", got)
		}
		if strings.Contains(got, "\\poemlines") {
			t.Errorf("numbering off, no poemlines expected in %s", got)
		}
	})

	t.Run("numbering directives", func(t *testing.T) {
		content := Segment([]doc.Block{para(doc.Text("a"))})
		got := renderLaTeXText(t, content, ResolveOptions(map[string]string{
			"linenumbers":  "5",
			"linenumside":  "left",
			"firstlinenum": "3",
		}))

		for _, want := range []string{
			"\\poemlines{5}",
			"\\verselinenumbersleft",
			"\\setverselinenums{3}{3}",
			"\\poemlines{0}",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %s in %s", want, got)
			}
		}
		if strings.Index(got, "\\poemlines{0}") < strings.Index(got, "a \\\\") {
			t.Errorf("numbering must stop after the last line: %s", got)
		}
	})

	t.Run("right side numbering needs no directive", func(t *testing.T) {
		content := Segment([]doc.Block{para(doc.Text("a"))})
		got := renderLaTeXText(t, content, ResolveOptions(map[string]string{"linenumbers": "2"}))
		if strings.Contains(got, "\\verselinenumbersleft") {
			t.Errorf("unexpected left numbering directive in %s", got)
		}
		if strings.Contains(got, "\\setverselinenums") {
			t.Errorf("no first line number was given: %s", got)
		}
	})

	t.Run("no content skips width measurement", func(t *testing.T) {
		got := renderLaTeXText(t, nil, ResolveOptions(nil))
		if strings.Contains(got, "\\settowidth") {
			t.Errorf("unexpected width measurement in %s", got)
		}
		if !strings.Contains(got, "\\begin{verse}\n") {
			t.Errorf("expected bare environment in %s", got)
		}
	})

	t.Run("vindent", func(t *testing.T) {
		content := Segment([]doc.Block{para(doc.Text("a"))})
		got := renderLaTeXText(t, content, ResolveOptions(map[string]string{"vindent": "2em"}))
		if !strings.Contains(got, "\\setlength{\\vindent}{2em}") {
			t.Errorf("missing vindent in %s", got)
		}
	})

	t.Run("empty verse line keeps its slot", func(t *testing.T) {
		content := Segment([]doc.Block{
			para(doc.Text("a"), br(), br(), doc.Text("b")),
		})
		got := renderLaTeXText(t, content, ResolveOptions(nil))
		if !strings.Contains(got, "~ \\\\\n") {
			t.Errorf("empty line should render as ~ in %s", got)
		}
	})

	t.Run("title is escaped", func(t *testing.T) {
		got := renderLaTeXText(t, nil, ResolveOptions(map[string]string{"title": "50% & more"}))
		if !strings.Contains(got, "\\poemtitle{50\\% \\& more}") {
			t.Errorf("title not escaped in %s", got)
		}
	})
}
