package titles

import (
	"regexp"

	"github.com/pagemill/chapterscan/internal/classify"
)

// Rule is one entry of the ordered pattern library. Rules carry their
// own trim policy (MinRunes) because heading matches and bare
// special-section tokens have different noise floors: "第1章" alone is
// a running-header fragment, "前言" alone is a real title.
type Rule struct {
	// Name identifies the rule in diagnostics and Candidate.Rule.
	Name string

	// Pattern is the match pattern, applied to the whole input text.
	Pattern *regexp.Regexp

	// MinRunes is the minimum length of a normalized match; shorter
	// matches are discarded as noise.
	MinRunes int

	// Fallback rules run only when no earlier non-fallback heading
	// rule matched anything.
	Fallback bool

	// Independent rules run regardless of what other rules matched.
	Independent bool
}

// Pattern fragments shared by the heading rules. The ordinal and unit
// vocabulary lives in the classify package so that classification and
// extraction can never drift apart.
var (
	ordinal = classify.OrdinalHeading.String()

	// leader is a dot/ellipsis run of two or more, the row leader of a
	// printed table of contents.
	leader = `[.．…·]{2,}`
)

// DefaultRules is the pattern library, in precedence order:
//
//  1. "toc-row": a heading followed by a leader run and an optional
//     parenthesized page number - the shape of a contents row.
//  2. "bounded-heading": a heading plus up to 30 trailing characters
//     that are neither digits nor newlines. The digit cutoff keeps a
//     following page number (or the next numbered row) out of the
//     title.
//  3. "loose-heading" (fallback): a heading with no length bound short
//     of the newline, for pages whose titles legitimately contain
//     digits. Applied only when the bounded rules matched nothing, so
//     a page never yields an unbounded candidate set.
//  4. "special-section" (independent): named front/back-matter tokens
//     matched as whole lines, with or without an ordinal marker.
//
// New numbering conventions are added here, not in control flow.
var DefaultRules = []Rule{
	{
		Name:     "toc-row",
		Pattern:  regexp.MustCompile(ordinal + `[^\n]*?` + leader + `\s*\(?[0-9０-９]+\)?`),
		MinRunes: 4,
	},
	{
		Name:     "bounded-heading",
		Pattern:  regexp.MustCompile(ordinal + `[^0-9０-９\n]{0,30}`),
		MinRunes: 4,
	},
	{
		Name:     "loose-heading",
		Pattern:  regexp.MustCompile(ordinal + `[^\n]{0,50}`),
		MinRunes: 4,
		Fallback: true,
	},
	{
		Name: "special-section",
		Pattern: regexp.MustCompile(
			`(?m)^\s*(?:前言|序言|序章|序|引言|导论|绪论|结语|后记|附录|目录)` +
				`(?:\s*` + leader + `\s*\(?[0-9０-９]+\)?)?\s*$`),
		MinRunes:    2,
		Independent: true,
	},
}
