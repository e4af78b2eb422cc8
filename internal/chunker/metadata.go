package chunker

import (
	"regexp"
	"strings"
	"unicode"
)

// Chapter detection looks at the leading portion of a chunk only; a chapter
// reference deep inside a chunk usually belongs to a different heading.
const (
	chapterScanLimit = 500
	sectionScanLimit = 200
)

var (
	chapterHeading = regexp.MustCompile(`(?i)chapter\s+(\d+)`)
	leadingNumber  = regexp.MustCompile(`^(\d+)\.\d+`)
)

// ExtractChapter returns the chapter number referenced at the start of the
// chunk text: a "Chapter N" heading within the first 500 characters, or a
// leading "N.M" section number. Returns "" when neither matches; an empty
// chapter means unknown, never an error.
func ExtractChapter(text string) string {
	head := truncateRunes(text, chapterScanLimit)
	if m := chapterHeading.FindStringSubmatch(head); m != nil {
		return m[1]
	}
	if m := leadingNumber.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
		return m[1]
	}
	return ""
}

// ExtractSection returns the first line within the leading 200 characters
// that looks like a section header: strictly between 3 and 100 characters
// and either fully capitalized or title-cased. The length and casing gate
// keeps false positives rare; false negatives are acceptable.
func ExtractSection(text string) string {
	head := truncateRunes(text, sectionScanLimit)
	for _, line := range strings.Split(head, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 3 && len(line) < 100 && (isTitleCase(line) || isAllUpper(line)) {
			return line
		}
	}
	return ""
}

// truncateRunes cuts s to at most limit runes without splitting a multibyte
// rune at the window edge.
func truncateRunes(s string, limit int) string {
	for i := range s {
		if limit == 0 {
			return s[:i]
		}
		limit--
	}
	return s
}

// isAllUpper reports whether s contains at least one cased rune and every
// cased rune is uppercase.
func isAllUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// isTitleCase reports whether every word in s starts with an uppercase rune
// followed only by lowercase ones, with at least one cased rune overall.
func isTitleCase(s string) bool {
	cased := false
	for _, word := range strings.Fields(s) {
		first := true
		for _, r := range word {
			switch {
			case unicode.IsUpper(r):
				if !first {
					return false
				}
				cased = true
				first = false
			case unicode.IsLower(r):
				if first {
					return false
				}
				cased = true
			default:
				// Uncased runes (digits, punctuation) reset nothing but do
				// not count as a word start either.
				continue
			}
		}
	}
	return cased
}
