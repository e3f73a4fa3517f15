package classify

import (
	"regexp"
	"strings"
)

// Label is the classification of a single page's recognized text.
type Label int

const (
	// LabelContent marks an ordinary content page.
	LabelContent Label = iota

	// LabelTableOfContents marks a page listing chapter titles with
	// page-number suffixes.
	LabelTableOfContents

	// LabelChapterStart marks the first page of a chapter: its opening
	// lines are themselves a chapter heading.
	LabelChapterStart
)

// String returns a stable lower-case name for the label.
func (l Label) String() string {
	switch l {
	case LabelTableOfContents:
		return "toc"
	case LabelChapterStart:
		return "chapter-start"
	default:
		return "content"
	}
}

// Heading vocabulary. The glyph and token sets are deliberately plain
// constants so that adding a numbering convention (Roman numerals, new
// unit words) is a vocabulary change, not a control-flow change; the
// title extractor builds its rule patterns from the same sets.
const (
	// NumeralGlyphs enumerates every glyph accepted as an ordinal
	// marker inside a heading: Arabic digits, fullwidth digits, the
	// traditional numerals, and the 〇 placeholder OCR often produces
	// for 零.
	NumeralGlyphs = `0-9０-９一二三四五六七八九十百千零〇`

	// UnitWords enumerates the section-unit tokens that may follow an
	// ordinal marker: chapter, section, part, volume, episode.
	UnitWords = `章节篇部卷回`
)

// OrdinalHeading matches "第<numeral>+<unit>" anywhere in text. It is
// the shared core of both classification and title extraction.
var OrdinalHeading = regexp.MustCompile(`第[` + NumeralGlyphs + `]+[` + UnitWords + `]`)

var (
	// tocMarkerPattern matches explicit table-of-contents markers. OCR
	// tends to split the two glyphs of 目录 with stray whitespace, so
	// each form tolerates internal spacing; the Latin form is matched
	// case-insensitively.
	tocMarkerPattern = regexp.MustCompile(`目\s*录|目\s*次|(?i:contents)`)

	// chapterStartPattern anchors an ordinal heading at the start of a
	// page's prefix window: nothing but whitespace may precede it.
	chapterStartPattern = regexp.MustCompile(`^\s*` + OrdinalHeading.String())

	// trailingNumberPattern matches a page-number suffix at the end of
	// a TOC row.
	trailingNumberPattern = regexp.MustCompile(`[0-9０-９]+\s*$`)
)

const (
	// prefixWindowLines is how many opening lines are inspected for a
	// chapter heading. Headings OCR across at most a couple of lines;
	// a larger window would start matching body references like
	// "见第三章".
	prefixWindowLines = 5

	// minNumberedLines is how many page-number-suffixed lines mark a
	// page as a table of contents even without an explicit marker.
	minNumberedLines = 5
)

// Classify labels a page's recognized text as an ordinary content
// page, a table-of-contents page, or a chapter-start page.
//
// Classification is a pure function of the given text: it never looks
// at neighboring pages, so pages may be classified in any order and
// the result recomputed on demand. Empty text (including the empty
// string a failed recognition degrades to) is always LabelContent.
//
// A page is a table of contents if it carries an explicit TOC marker
// OR at least five lines end in a numeric token - either alone
// suffices. A page is a chapter start if its first few lines, joined,
// begin with an ordinal heading ("第三章", "第12节", ...). TOC wins
// when both hold: a contents page routinely opens with the very
// heading shapes a chapter page does.
func Classify(text string) Label {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return LabelContent
	}

	if tocMarkerPattern.MatchString(text) || countNumberedLines(text) >= minNumberedLines {
		return LabelTableOfContents
	}

	if chapterStartPattern.MatchString(PrefixWindow(trimmed)) {
		return LabelChapterStart
	}

	return LabelContent
}

// PrefixWindow returns the first few lines of a page's text - the
// window a chapter-opening heading is looked for in. The title
// extractor uses the same window so that a chapter-start page yields
// its heading and nothing from deeper in the page. Line breaks are
// preserved: heading patterns cut off at end of line.
func PrefixWindow(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > prefixWindowLines {
		lines = lines[:prefixWindowLines]
	}
	return strings.Join(lines, "\n")
}

// countNumberedLines counts lines that end in a numeric token - the
// page-number suffix shape of a contents row.
func countNumberedLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}
		if trailingNumberPattern.MatchString(line) {
			count++
		}
	}
	return count
}
