package scan

import (
	"github.com/pagemill/chapterscan/internal/classify"
)

// Event is one per-page progress report. Events are emitted in page
// order from the orchestrator's accumulation pass, never from worker
// goroutines, so a consumer needs no synchronization of its own.
type Event struct {
	// Page is the page number just processed.
	Page int `json:"page"`

	// Ordinal is the page's 1-based position within this scan's
	// sequence; Total is the sequence length.
	Ordinal int `json:"ordinal"`
	Total   int `json:"total"`

	// Label is the page's classification.
	Label classify.Label `json:"label"`

	// Candidates is how many new chapter candidates the page
	// contributed after deduplication.
	Candidates int `json:"candidates"`

	// CacheHit reports whether the page's text came from the
	// recognition cache rather than a fresh recognition.
	CacheHit bool `json:"cache_hit"`

	// Warning carries the page's non-fatal failure, if any.
	Warning string `json:"warning,omitempty"`
}

// ProgressFunc consumes progress events. A nil ProgressFunc disables
// reporting; scanning logic never depends on it.
type ProgressFunc func(Event)
