package titles

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)

	// leaderCutoff drops a dot/ellipsis leader run and everything after
	// it, including the page number a TOC row trails off into.
	leaderCutoff = regexp.MustCompile(`[.…·]{2,}.*$`)

	// trailingPageNumber strips a parenthesized page number left at the
	// end of a match.
	trailingPageNumber = regexp.MustCompile(`\(\d+\)$`)
)

// Normalize turns a raw pattern match into its deduplication-ready
// form. Steps, in order: fold fullwidth characters to their halfwidth
// forms (OCR of CJK pages emits ６、（、｜ freely), trim surrounding
// whitespace, collapse internal whitespace runs to a single space,
// truncate at the first run of two or more ellipsis/dot characters,
// strip a trailing parenthesized page number, and trim again.
func Normalize(raw string) string {
	s := width.Narrow.String(raw)
	s = strings.TrimSpace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = leaderCutoff.ReplaceAllString(s, "")
	s = trailingPageNumber.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// acceptable reports whether a normalized title passes a rule's noise
// filters: long enough for the rule's floor, and free of the
// vertical-bar character that running headers ("标题 | 第10页") leave
// behind.
func acceptable(title string, minRunes int) bool {
	if len([]rune(title)) < minRunes {
		return false
	}
	return !strings.Contains(title, "|")
}
