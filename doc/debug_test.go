package doc

import (
	"strings"
	"testing"
)

func TestDocumentString(t *testing.T) {
	var d *Document
	if got := d.String(); got != "<nil Document>" {
		t.Errorf("nil dump: got %q", got)
	}

	d = &Document{
		Title: "T",
		Blocks: []Block{
			{Kind: BlockDiv, Div: &Div{
				Classes: []string{"verse"},
				Attrs:   map[string]string{"title": "Ode", "linenumbers": "2"},
				Blocks: []Block{
					{Kind: BlockParagraph, Para: &Paragraph{Text: []Inline{
						Text("a"), {Kind: InlineLineBreak}, Text("b"),
					}}},
				},
			}},
		},
	}
	got := d.String()
	for _, want := range []string{
		`Document title="T"`,
		`Div[0]`,
		`classes="verse"`,
		// attributes dumped in natural order
		"Attr[\"linenumbers\"]=\"2\"\n",
		`Attr["title"]="Ode"`,
		`Text: "a"`,
		"linebreak",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in dump:\n%s", want, got)
		}
	}
	if strings.Index(got, "linenumbers") > strings.Index(got, `"title"`) {
		t.Errorf("attributes not sorted:\n%s", got)
	}
}
