package config

// Specification of requested output target.
// ENUM(html, latex, txt)
type OutputFmt int

// Screen reports whether target produces screen oriented markup.
func (o OutputFmt) Screen() bool {
	return o == OutputFmtHtml
}

// Print reports whether target produces typesetting markup.
func (o OutputFmt) Print() bool {
	return o == OutputFmtLatex
}

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtHtml:
		return ".html"
	case OutputFmtLatex:
		return ".tex"
	case OutputFmtTxt:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
