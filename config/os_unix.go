//go:build !windows

package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const badFileName = "_bad_file_name_"

// CleanFileName strips path separators and leading dots from a file name so
// the result always stays inside its output directory and is never hidden.
func CleanFileName(in string) string {
	var out strings.Builder
	for _, sym := range in {
		if sym == os.PathSeparator || sym == os.PathListSeparator {
			continue
		}
		out.WriteRune(sym)
	}
	cleaned := strings.TrimLeft(out.String(), ".")
	if cleaned == "" {
		return badFileName
	}
	return cleaned
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
