package resolver

import (
	"regexp"
	"strings"
	"unicode"
)

var unsafeArgChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_|>/=]`)

// QuoteArgs wraps arguments in single quotes so they survive the shell.
// Arguments with whitespace are always quoted; arguments without whitespace
// are quoted when they contain a character outside the safe set.
func QuoteArgs(args []string) []string {
	if args == nil {
		return nil
	}
	out := make([]string, len(args))
	for i, a := range args {
		switch {
		case strings.IndexFunc(a, unicode.IsSpace) >= 0:
			out[i] = "'" + a + "'"
		case unsafeArgChars.MatchString(a):
			out[i] = "'" + a + "'"
		default:
			out[i] = a
		}
	}
	return out
}
