package extract

import (
	"regexp"
	"strings"
)

var (
	nonPrintableRe = regexp.MustCompile(`[^\x20-\x7E\n]`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// Clean normalizes raw input text: control and non-printable characters are
// stripped and all whitespace runs collapse to single spaces. Pure text
// normalization, applied once before any analysis step.
func Clean(text string) string {
	text = nonPrintableRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
