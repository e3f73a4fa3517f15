// Package titles turns recognized page text into candidate chapter
// titles. An ordered rule table matches heading shapes (第X章 headers,
// contents rows, named special sections); every raw match is then
// normalized into a deduplication-ready form.
package titles

import (
	"github.com/pagemill/chapterscan/internal/classify"
)

// Candidate is a single extracted chapter title: the raw pattern match
// and its normalized, deduplication-ready form.
type Candidate struct {
	// Raw is the text exactly as matched on the page.
	Raw string `json:"raw"`

	// Title is the normalized form; deduplication key.
	Title string `json:"title"`

	// Rule names the pattern-library rule that produced the match.
	Rule string `json:"rule"`
}

// Extract applies the pattern library to a page's recognized text and
// returns its candidate titles, normalized and deduplicated within the
// page, in match order.
//
// The label decides how much of the page is searched: a table of
// contents is searched in full (every row is a title), a chapter-start
// page only in its opening window (the heading is the title; anything
// deeper is body text). Content pages yield nothing.
func Extract(text string, label classify.Label) []Candidate {
	switch label {
	case classify.LabelTableOfContents:
		return extract(text)
	case classify.LabelChapterStart:
		return extract(classify.PrefixWindow(text))
	default:
		return nil
	}
}

func extract(text string) []Candidate {
	var (
		out            []Candidate
		seen           = make(map[string]struct{})
		headingMatched bool
	)

	for _, rule := range DefaultRules {
		if rule.Fallback && headingMatched {
			continue
		}

		matches := rule.Pattern.FindAllString(text, -1)
		if len(matches) > 0 && !rule.Fallback && !rule.Independent {
			headingMatched = true
		}

		for _, raw := range matches {
			title := Normalize(raw)
			if !acceptable(title, rule.MinRunes) {
				continue
			}
			if _, dup := seen[title]; dup {
				continue
			}
			seen[title] = struct{}{}
			out = append(out, Candidate{Raw: raw, Title: title, Rule: rule.Name})
		}
	}

	return out
}
