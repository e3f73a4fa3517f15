package main

import (
	"fmt"
	"image"

	"github.com/pagemill/chapterscan/internal/epub"
	"github.com/pagemill/chapterscan/internal/home"
	"github.com/pagemill/chapterscan/internal/ocr"
	"github.com/pagemill/chapterscan/internal/pagestore"
	"github.com/pagemill/chapterscan/internal/preprocess"
	"github.com/pagemill/chapterscan/internal/scan"
)

// openStore extracts the book's page images into the home directory if
// they are not already there and returns the resulting store. A
// previously extracted book is reused as-is.
func openStore(sourcePath string) (*pagestore.Store, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, err
	}

	bookID := home.BookID(sourcePath)
	if err := h.EnsureBookDirs(bookID); err != nil {
		return nil, err
	}

	store, err := pagestore.Load(h.ImagesDir(bookID))
	if err != nil {
		return nil, err
	}
	if store.Len() > 0 {
		logger.Info("reusing extracted pages", "book", bookID, "pages", store.Len())
		return store, nil
	}

	count, err := epub.ExtractImages(sourcePath, store)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", sourcePath, err)
	}
	logger.Info("extracted pages", "book", bookID, "pages", count)
	return store, nil
}

// newScanner assembles the recognition cache and scanner for a book
// from the loaded configuration.
func newScanner(sourcePath string, store *pagestore.Store) (*scan.Scanner, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	bookID := home.BookID(sourcePath)
	cfg := cfgManager.Get()

	var enhance ocr.Enhancer
	if cfg.Enhance.Enabled {
		opts := cfg.EnhanceOptions()
		enhance = func(img image.Image) image.Image {
			return preprocess.EnhanceWith(img, opts)
		}
	}

	cache, err := ocr.NewCache(ocr.CacheConfig{
		Dir:       h.OCRDir(bookID),
		Engine:    ocr.NewTesseractRecognizer(cfg.Language),
		Enhance:   enhance,
		SkipBlank: cfg.SkipBlank,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	return scan.New(scan.Config{
		Store:     store,
		Cache:     cache,
		Workers:   cfg.Workers,
		TOCWindow: cfg.TOCWindow,
		Progress:  logProgress,
		Logger:    logger,
	})
}

// logProgress reports per-page scan progress on the debug log and
// surfaces page warnings immediately.
func logProgress(e scan.Event) {
	if e.Warning != "" {
		logger.Warn("page degraded", "page", e.Page, "warning", e.Warning)
	}
	logger.Debug("scanned page",
		"page", e.Page,
		"progress", fmt.Sprintf("%d/%d", e.Ordinal, e.Total),
		"label", e.Label.String(),
		"candidates", e.Candidates,
		"cached", e.CacheHit)
}
