package scan

import (
	"github.com/pagemill/chapterscan/internal/titles"
)

// Mode identifies which scan produced a result.
type Mode string

const (
	// ModeTOCScan is the narrow scan over the book's opening pages,
	// harvesting titles from table-of-contents and chapter-start pages.
	ModeTOCScan Mode = "toc-scan"

	// ModeFullScan is the whole-book scan recording page-anchored
	// chapter boundaries.
	ModeFullScan Mode = "full-scan"
)

// ChapterCandidate is one discovered chapter title.
type ChapterCandidate struct {
	// Raw is the match exactly as it appeared on the page.
	Raw string `json:"raw" yaml:"raw"`

	// Title is the normalized form; pairwise distinct within a
	// ScanResult.
	Title string `json:"title" yaml:"title"`

	// SourcePage anchors the candidate to the page the chapter starts
	// on. Zero when unknown: a contents listing names chapters without
	// saying where they begin, so TOC-scan candidates carry no anchor.
	SourcePage int `json:"source_page,omitempty" yaml:"source_page,omitempty"`

	// Order is the discovery order: monotonically increasing in scan
	// (page) order, regardless of recognition concurrency.
	Order int `json:"order" yaml:"order"`
}

// ScanResult is the accumulated outcome of one orchestrator run. It is
// created fresh per run and never mutated after the run completes.
type ScanResult struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id" yaml:"run_id"`

	// Mode is ModeTOCScan or ModeFullScan.
	Mode Mode `json:"mode" yaml:"mode"`

	// Chapters is the ordered, deduplicated candidate sequence.
	Chapters []ChapterCandidate `json:"chapters" yaml:"chapters"`

	// PagesScanned counts the pages this run processed.
	PagesScanned int `json:"pages_scanned" yaml:"pages_scanned"`

	// Warnings lists the non-fatal per-page failures the run absorbed,
	// in page order. Never silently dropped.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// accumulator collects candidates with first-occurrence-wins
// deduplication on the normalized title and a monotonic discovery
// order. Single-writer: the orchestrator feeds it from one sequential
// pass in page order.
type accumulator struct {
	seen     map[string]struct{}
	chapters []ChapterCandidate
}

func newAccumulator() *accumulator {
	return &accumulator{seen: make(map[string]struct{})}
}

// add records a candidate unless its normalized title was already
// seen. Reports whether the candidate was kept.
func (a *accumulator) add(c titles.Candidate, sourcePage int) bool {
	if _, dup := a.seen[c.Title]; dup {
		return false
	}
	a.seen[c.Title] = struct{}{}
	a.chapters = append(a.chapters, ChapterCandidate{
		Raw:        c.Raw,
		Title:      c.Title,
		SourcePage: sourcePage,
		Order:      len(a.chapters),
	})
	return true
}
