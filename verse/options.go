// Package verse implements the poetry transformation: recognizing verse
// containers, re-segmenting their content into stanzas of lines, and
// rendering target specific replacement blocks.
package verse

import (
	"strconv"
	"strings"
)

// Attribute names recognized on a verse container.
const (
	attrIndentAfter  = "indentafter"
	attrVIndent      = "vindent"
	attrTitle        = "title"
	attrLineNumbers  = "linenumbers"
	attrLineNumSide  = "linenumside"
	attrFirstLineNum = "firstlinenum"
	attrStartNumsAt  = "startnumsat"
)

// NumberSide tells on which side of a line its number is typeset.
type NumberSide string

const (
	NumberLeft  NumberSide = "left"
	NumberRight NumberSide = "right"
)

// Options is the fully resolved configuration of one verse container. Nil
// pointer fields mean the corresponding feature is off.
type Options struct {
	IndentAfter  *int // recognized for source compatibility, not acted upon
	VIndent      string
	Title        string
	HasTitle     bool
	LineNumbers  *int // numbering frequency
	NumberSide   NumberSide
	FirstLineNum *int
	StartNumsAt  int
}

// ResolveOptions maps the container attribute bag to Options. This is the
// single boundary where malformed values are handled: numeric attributes
// never fail, they fall back to their documented defaults.
func ResolveOptions(attrs map[string]string) Options {
	opts := Options{NumberSide: NumberRight, StartNumsAt: 1}

	if v, ok := attrs[attrTitle]; ok && v != "" {
		opts.Title, opts.HasTitle = v, true
	}
	opts.VIndent = strings.TrimSpace(attrs[attrVIndent])
	opts.IndentAfter = coerceNumber(attrs, attrIndentAfter, nil)
	if strings.EqualFold(strings.TrimSpace(attrs[attrLineNumSide]), string(NumberLeft)) {
		opts.NumberSide = NumberLeft
	}

	one := 1
	if _, ok := attrs[attrLineNumbers]; ok {
		opts.LineNumbers = coerceNumber(attrs, attrLineNumbers, &one)
	}
	if _, ok := attrs[attrFirstLineNum]; ok {
		opts.FirstLineNum = coerceNumber(attrs, attrFirstLineNum, &one)
	}

	// startnumsat defaults to firstlinenum, an explicit value always wins
	if opts.FirstLineNum != nil {
		opts.StartNumsAt = *opts.FirstLineNum
	}
	if n := coerceNumber(attrs, attrStartNumsAt, nil); n != nil {
		opts.StartNumsAt = *n
	}
	return opts
}

// coerceNumber permissively converts a string attribute to an integer,
// returning fallback when the attribute is absent or not a number.
func coerceNumber(attrs map[string]string, name string, fallback *int) *int {
	v, ok := attrs[name]
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	n := int(f)
	return &n
}
