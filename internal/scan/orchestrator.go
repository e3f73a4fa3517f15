package scan

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/pagemill/chapterscan/internal/classify"
	"github.com/pagemill/chapterscan/internal/ocr"
	"github.com/pagemill/chapterscan/internal/pagestore"
	"github.com/pagemill/chapterscan/internal/titles"
)

const (
	// defaultTOCWindow is how many pages, by ordinal position in the
	// ordered page sequence, the TOC scan inspects. Printed contents
	// pages sit in the front matter; 25 pages covers cover, colophon
	// and multi-page contents with room to spare.
	defaultTOCWindow = 25

	// defaultWorkers bounds concurrent recognitions. Recognition is
	// CPU and memory heavy; two concurrent pages keeps a typical
	// machine busy without thrashing.
	defaultWorkers = 2
)

// Config configures a Scanner.
type Config struct {
	// Store supplies the ordered pages. Required.
	Store *pagestore.Store

	// Cache performs (memoized) recognition. Required.
	Cache *ocr.Cache

	// Workers bounds concurrent recognitions; <=0 uses the default.
	Workers int

	// TOCWindow is the TOC scan's page window; <=0 uses the default.
	TOCWindow int

	// Progress receives per-page events. Nil disables reporting.
	Progress ProgressFunc

	// Logger receives scan-level logs. Nil uses slog.Default().
	Logger *slog.Logger
}

// Scanner drives the page store, recognition cache, classifier and
// title extractor across a page range, accumulating a ScanResult.
//
// Recognition runs concurrently up to the worker bound, but candidate
// accumulation is one sequential pass in ascending page order over the
// completed results: discovery order always reflects page order, never
// completion order, no matter how many workers ran.
type Scanner struct {
	store     *pagestore.Store
	cache     *ocr.Cache
	workers   int
	tocWindow int
	progress  ProgressFunc
	logger    *slog.Logger
}

// New creates a Scanner.
func New(cfg Config) (*Scanner, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("scan: config requires a page store")
	}
	if cfg.Cache == nil {
		return nil, fmt.Errorf("scan: config requires a recognition cache")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	window := cfg.TOCWindow
	if window <= 0 {
		window = defaultTOCWindow
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		store:     cfg.Store,
		cache:     cfg.Cache,
		workers:   workers,
		tocWindow: window,
		progress:  cfg.Progress,
		logger:    logger.With("component", "scanner"),
	}, nil
}

// TOCScan recognizes and classifies the book's opening pages and
// collects chapter titles from every page labeled as a table of
// contents or a chapter start. The window is counted by ordinal
// position in the ordered page sequence, not by page number value, so
// numbering gaps do not shrink it.
func (s *Scanner) TOCScan(ctx context.Context) (*ScanResult, error) {
	pages := s.store.Pages()
	if len(pages) > s.tocWindow {
		pages = pages[:s.tocWindow]
	}
	s.logger.Info("starting toc scan", "pages", len(pages), "workers", s.workers)
	return s.run(ctx, ModeTOCScan, pages)
}

// FullScan recognizes and classifies every page in the store, in
// ascending page order, and records each chapter-start page as a
// page-anchored chapter candidate. It is the fallback when the TOC
// scan finds nothing.
func (s *Scanner) FullScan(ctx context.Context) (*ScanResult, error) {
	pages := s.store.Pages()
	s.logger.Info("starting full scan", "pages", len(pages), "workers", s.workers)
	return s.run(ctx, ModeFullScan, pages)
}

// run recognizes the pages concurrently, then accumulates candidates
// in one sequential pass in page order.
func (s *Scanner) run(ctx context.Context, mode Mode, pages []pagestore.Page) (*ScanResult, error) {
	recognized, fatals := s.recognizePages(ctx, pages)

	result := &ScanResult{
		RunID: uuid.New().String(),
		Mode:  mode,
	}
	acc := newAccumulator()

	for i, page := range pages {
		res := recognized[i]
		if res == nil && fatals[i] == nil {
			// Cancelled before this page was issued.
			continue
		}
		result.PagesScanned++

		var (
			text     string
			cacheHit bool
			warning  string
		)
		switch {
		case res != nil:
			text = res.Text
			cacheHit = res.Origin == ocr.OriginCached
			if res.Err != nil {
				warning = res.Err.Error()
			}
		case fatals[i] != nil:
			// Fatal for this page's request only; the page degrades to
			// empty text and the scan continues.
			warning = fatals[i].Error()
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		label := classify.Classify(text)
		added := 0
		switch {
		case mode == ModeTOCScan &&
			(label == classify.LabelTableOfContents || label == classify.LabelChapterStart):
			for _, c := range titles.Extract(text, label) {
				if acc.add(c, 0) {
					added++
				}
			}
		case mode == ModeFullScan && label == classify.LabelChapterStart:
			// A chapter-start page contributes exactly its heading,
			// anchored to the page it opens on.
			if cands := titles.Extract(text, label); len(cands) > 0 {
				if acc.add(cands[0], page.Number) {
					added++
				}
			}
		}

		if s.progress != nil {
			s.progress(Event{
				Page:       page.Number,
				Ordinal:    i + 1,
				Total:      len(pages),
				Label:      label,
				Candidates: added,
				CacheHit:   cacheHit,
				Warning:    warning,
			})
		}
	}

	result.Chapters = acc.chapters
	s.logger.Info("scan complete",
		"mode", string(mode),
		"pages_scanned", result.PagesScanned,
		"chapters", len(result.Chapters),
		"warnings", len(result.Warnings))

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// recognizePages runs the cache over the pages with bounded
// concurrency. Results land in a slice indexed by page position, so
// completion order is irrelevant to callers. Cancellation stops
// issuing new page work; in-flight recognitions complete.
func (s *Scanner) recognizePages(ctx context.Context, pages []pagestore.Page) ([]*ocr.Result, []error) {
	results := make([]*ocr.Result, len(pages))
	fatals := make([]error, len(pages))

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

issue:
	for i, page := range pages {
		select {
		case <-ctx.Done():
			break issue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, p pagestore.Page) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := s.cache.Recognize(ctx, p)
			if err != nil {
				s.logger.Warn("page request failed", "page", p.Number, "error", err)
				fatals[i] = err
				return
			}
			results[i] = res
		}(i, page)
	}

	wg.Wait()
	return results, fatals
}
