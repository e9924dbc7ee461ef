package doc

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestWriteHTML(t *testing.T) {
	t.Run("page skeleton", func(t *testing.T) {
		d := &Document{
			Title: "T & T",
			Lang:  language.English,
			Blocks: []Block{
				{Kind: BlockParagraph, Para: &Paragraph{Text: []Inline{Text("hello")}}},
			},
		}
		var buf strings.Builder
		if err := WriteHTML(&buf, d, "style.css"); err != nil {
			t.Fatal(err)
		}
		got := buf.String()
		for _, want := range []string{
			`xml:lang="en"`,
			`<title>T &amp; T</title>`,
			`<link rel="stylesheet" type="text/css" href="style.css"/>`,
			`<p>hello</p>`,
		} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %s in %s", want, got)
			}
		}
	})

	t.Run("no stylesheet no link", func(t *testing.T) {
		var buf strings.Builder
		if err := WriteHTML(&buf, &Document{}, ""); err != nil {
			t.Fatal(err)
		}
		got := buf.String()
		if strings.Contains(got, "stylesheet") {
			t.Errorf("unexpected stylesheet link in %s", got)
		}
		if !strings.Contains(got, "<title>Untitled</title>") {
			t.Errorf("missing default title in %s", got)
		}
	})

	t.Run("raw html splices into containers", func(t *testing.T) {
		d := &Document{Blocks: []Block{
			{Kind: BlockDiv, Div: &Div{
				ID:      "d",
				Classes: []string{"wrap"},
				Attrs:   map[string]string{"title": "x"},
				Blocks:  []Block{RawHTML("<hr/>")},
			}},
		}}
		var buf strings.Builder
		if err := WriteHTML(&buf, d, ""); err != nil {
			t.Fatal(err)
		}
		got := buf.String()
		if !strings.Contains(got, `<div id="d" class="wrap" data-title="x">`) {
			t.Errorf("div open tag wrong in %s", got)
		}
		if !strings.Contains(got, "<hr/>") {
			t.Errorf("raw fragment missing in %s", got)
		}
	})

	t.Run("raw latex is skipped", func(t *testing.T) {
		var buf strings.Builder
		if err := WriteHTML(&buf, &Document{Blocks: []Block{RawLaTeX(`\newpage`)}}, ""); err != nil {
			t.Fatal(err)
		}
		if strings.Contains(buf.String(), "newpage") {
			t.Errorf("latex fragment leaked into html: %s", buf.String())
		}
	})

	t.Run("mixed inline content keeps order", func(t *testing.T) {
		p := &Paragraph{Text: []Inline{
			Text("a "),
			Emph(Text("b")),
			Text(" c"),
			{Kind: InlineLineBreak},
			Text("d"),
		}}
		d := &Document{Blocks: []Block{{Kind: BlockParagraph, Para: p}}}
		var buf strings.Builder
		if err := WriteHTML(&buf, d, ""); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "<p>a <em>b</em> c<br/>d</p>") {
			t.Errorf("inline ordering lost: %s", buf.String())
		}
	})

	t.Run("link and span", func(t *testing.T) {
		p := &Paragraph{Text: []Inline{
			{Kind: InlineLink, Href: "http://x", Children: []Inline{Text("go")}},
			{Kind: InlineSpan, Style: "mark", Children: []Inline{Text("s")}},
		}}
		d := &Document{Blocks: []Block{{Kind: BlockParagraph, Para: p}}}
		var buf strings.Builder
		if err := WriteHTML(&buf, d, ""); err != nil {
			t.Fatal(err)
		}
		got := buf.String()
		if !strings.Contains(got, `<a href="http://x">go</a>`) {
			t.Errorf("link markup wrong: %s", got)
		}
		if !strings.Contains(got, `<span class="mark">s</span>`) {
			t.Errorf("span markup wrong: %s", got)
		}
	})
}

func TestLineGroupElement(t *testing.T) {
	g := &LineGroup{Lines: []Line{
		{Text("one")},
		{},
		{Text("two")},
	}}
	got := ElementString(LineGroupElement(g))
	if !strings.HasPrefix(got, `<div class="stanza">`) {
		t.Errorf("stanza wrapper missing: %s", got)
	}
	if n := strings.Count(got, `class="verse-line"`); n != 3 {
		t.Errorf("expected 3 verse lines (empty one included), got %d in %s", n, got)
	}
	if !strings.Contains(got, ">one</div>") || !strings.Contains(got, ">two</div>") {
		t.Errorf("line content missing: %s", got)
	}
}
