package ocr

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pagemill/chapterscan/internal/pagestore"
	"github.com/pagemill/chapterscan/internal/preprocess"
)

// Enhancer is an optional image-preprocessing step applied before
// recognition, purely a quality transform. A nil Enhancer is the
// identity transform.
type Enhancer func(image.Image) image.Image

// Origin records where a Result's text came from.
type Origin string

const (
	// OriginComputed means recognition ran for this request.
	OriginComputed Origin = "computed"

	// OriginCached means the text was returned from a persisted entry
	// without invoking the recognition engine.
	OriginCached Origin = "cached"
)

// RecognitionError reports a failed recognition for one page. It is
// non-fatal: the cache degrades the page to empty text and the scan
// continues; callers surface it as a warning.
type RecognitionError struct {
	Page int
	Err  error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("ocr: recognition failed for page %d: %v", e.Page, e.Err)
}

func (e *RecognitionError) Unwrap() error {
	return e.Err
}

// Result is the recognized text of one page.
type Result struct {
	// Page is the page number the text belongs to.
	Page int `json:"page"`

	// Text is the recognized text. Empty both when the page genuinely
	// contains no text and when recognition failed; see Err.
	Text string `json:"text"`

	// Origin is OriginComputed or OriginCached.
	Origin Origin `json:"origin"`

	// Err carries the *RecognitionError when this request ran
	// recognition and it failed. Hits on a persisted entry never carry
	// an error, even if that entry was written by a failed run.
	Err error `json:"-"`
}

// CacheConfig configures a new Cache.
type CacheConfig struct {
	// Dir is the directory holding one page_NNNN.txt entry per page.
	Dir string

	// Engine performs recognition on cache misses. Required.
	Engine Recognizer

	// Enhance is applied to the page image before recognition.
	// Nil means no preprocessing.
	Enhance Enhancer

	// SkipBlank measures each page's ink coverage before recognition
	// and caches empty text for near-blank pages without invoking the
	// engine. Blank separator pages are common in scanned books and
	// recognition is the most expensive step in the pipeline.
	SkipBlank bool

	// Logger receives per-page warnings. Nil uses slog.Default().
	Logger *slog.Logger
}

// Cache is the idempotent recognition memoization table, keyed by page
// number and persisted as one text file per page.
//
// Persisted entries are immutable: once a page has a result, the
// engine is never invoked for it again, even if the engine would now
// produce different text. This trades re-run cost for determinism
// across runs; invalidation is deleting the entry file, which the
// pipeline itself never does.
//
// Cache is safe for concurrent use. Writes to the same page's entry
// are serialized per page key; different pages may be written
// concurrently with no ordering constraint.
type Cache struct {
	dir       string
	engine    Recognizer
	enhance   Enhancer
	skipBlank bool
	logger    *slog.Logger

	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

// NewCache creates a cache rooted at cfg.Dir, creating the directory
// if needed.
func NewCache(cfg CacheConfig) (*Cache, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("ocr: cache requires a recognition engine")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		dir:       cfg.Dir,
		engine:    cfg.Engine,
		enhance:   cfg.Enhance,
		skipBlank: cfg.SkipBlank,
		logger:    logger.With("component", "ocr-cache"),
		locks:     make(map[int]*sync.Mutex),
	}, nil
}

// Recognize returns the text for a page, recognizing it on first
// request and serving the persisted entry afterwards.
//
// Recognition failure is not an error here: the page degrades to empty
// text, the empty entry is persisted, and the failure travels on
// Result.Err as a *RecognitionError warning. The returned error is
// non-nil only for cache I/O failures, which are fatal for this page's
// request.
func (c *Cache) Recognize(ctx context.Context, page pagestore.Page) (*Result, error) {
	lock := c.pageLock(page.Number)
	lock.Lock()
	defer lock.Unlock()

	path := c.entryPath(page.Number)
	if data, err := os.ReadFile(path); err == nil {
		return &Result{Page: page.Number, Text: string(data), Origin: OriginCached}, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read cache entry for page %d: %w", page.Number, err)
	}

	text, recErr := c.recognizePage(ctx, page)
	if recErr != nil && ctx.Err() != nil {
		// Cancellation is not a recognition failure: persisting empty
		// text here would poison the cache for every later run.
		return nil, fmt.Errorf("recognition of page %d interrupted: %w", page.Number, ctx.Err())
	}
	if recErr != nil {
		// Deliberate degradation: persist empty text so the scan never
		// aborts on one bad page, at the cost of conflating "failed"
		// with "empty" in later runs.
		text = ""
		c.logger.Warn("recognition failed, caching empty text",
			"page", page.Number, "error", recErr)
	}

	if err := c.persist(path, text); err != nil {
		return nil, fmt.Errorf("failed to persist page %d: %w", page.Number, err)
	}

	result := &Result{Page: page.Number, Text: text, Origin: OriginComputed}
	if recErr != nil {
		result.Err = &RecognitionError{Page: page.Number, Err: recErr}
	}
	return result, nil
}

// Cached reports whether a persisted entry exists for the page number.
func (c *Cache) Cached(number int) bool {
	_, err := os.Stat(c.entryPath(number))
	return err == nil
}

// recognizePage runs the engine over the page's artifact, routing it
// through the blank check and the enhancement pipeline first when
// those are configured.
func (c *Cache) recognizePage(ctx context.Context, page pagestore.Page) (string, error) {
	if !c.skipBlank && c.enhance == nil {
		return c.engine.Recognize(ctx, page.Path)
	}

	img, err := c.decodeArtifact(page.Path)
	if err != nil {
		if c.enhance == nil {
			// Blank check only: the artifact may be in a format this
			// process cannot decode but the engine can. Let the engine
			// judge it.
			return c.engine.Recognize(ctx, page.Path)
		}
		return "", err
	}

	if c.skipBlank && preprocess.MeasureInk(img).Blank() {
		c.logger.Debug("skipping blank page", "page", page.Number)
		return "", nil
	}

	if c.enhance == nil {
		return c.engine.Recognize(ctx, page.Path)
	}

	enhanced := c.enhance(img)

	// Tesseract wants a file path; hand it the enhanced page as a
	// throwaway PNG.
	tmp, err := os.CreateTemp("", fmt.Sprintf("chapterscan-page-%04d-*.png", page.Number))
	if err != nil {
		return "", fmt.Errorf("failed to create temp image: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmp, enhanced); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmp.Close()

	return c.engine.Recognize(ctx, tmpPath)
}

func (c *Cache) decodeArtifact(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode artifact: %w", err)
	}
	return img, nil
}

// persist writes an entry crash-consistently: the text goes to a
// sibling temp file first and is renamed into place, so a partially
// written result can never be read back as a cache hit.
func (c *Cache) persist(path, text string) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(text), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// pageLock returns the mutex serializing work on one page's entry.
func (c *Cache) pageLock(number int) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[number]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[number] = lock
	}
	return lock
}

// entryPath returns the cache file for a page number.
func (c *Cache) entryPath(number int) string {
	return filepath.Join(c.dir, fmt.Sprintf("page_%04d.txt", number))
}
