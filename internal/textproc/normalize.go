// Package textproc provides text cleanup applied to raw page text before
// chunking. All functions are pure and safe for concurrent use.
package textproc

import (
	"regexp"
	"strings"
)

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	multiSpace   = regexp.MustCompile(`[ \t]{2,}`)
	pageFooter   = regexp.MustCompile(`(?im)^[ \t]*page[ \t]*\d+[ \t]*$`)
)

// Normalize cleans raw extracted text: line endings become \n, runs of three
// or more newlines collapse to two, runs of horizontal whitespace collapse to
// a single space, and standalone "Page N" footer lines are removed. The
// result is trimmed. Normalize is idempotent and never fails; empty input
// yields an empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	txt := strings.ReplaceAll(text, "\r\n", "\n")
	txt = strings.ReplaceAll(txt, "\r", "\n")
	txt = pageFooter.ReplaceAllString(txt, "")
	txt = multiNewline.ReplaceAllString(txt, "\n\n")
	txt = multiSpace.ReplaceAllString(txt, " ")
	return strings.TrimSpace(txt)
}
