package pagestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ErrPageNotFound is returned by Get when no artifact exists for the
// requested page number. It is fatal only for that page's request;
// callers scanning many pages should report it and continue.
var ErrPageNotFound = errors.New("pagestore: page not found")

// Page is a single page artifact: a positive page number and the image
// file that holds its bitmap. Page numbers come from index markers in
// the source container and are not guaranteed contiguous - gaps are
// valid and must be tolerated by every consumer.
type Page struct {
	// Number is the positive page number parsed from the source
	// container. Unique within a store; immutable once assigned.
	Number int `json:"number"`

	// Path is the absolute path of the image file on disk.
	Path string `json:"path"`

	// Format is the image format tag: "png" or "jpeg".
	Format string `json:"format"`
}

// Store owns the mapping from page number to image artifact. It is the
// durable record driving all downstream OCR and classification work.
//
// Artifacts live in a single directory as page_NNNN.<ext> files, so a
// store rebuilt from disk with Load produces the identical mapping a
// fresh extraction would - the resumability contract the OCR cache
// depends on.
//
// Store is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	dir   string
	pages map[int]Page
}

// pageFilePattern matches the on-disk artifact naming scheme and
// captures the embedded page number.
var pageFilePattern = regexp.MustCompile(`^page_(\d+)\.(png|jpe?g)$`)

// New creates an empty store rooted at dir, creating the directory if
// needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create page directory: %w", err)
	}
	return &Store{
		dir:   dir,
		pages: make(map[int]Page),
	}, nil
}

// Load rebuilds a store from an existing on-disk layout, keyed off the
// numbers embedded in page_NNNN.<ext> filenames. Files that do not
// match the naming scheme are ignored. If two files carry the same
// number (e.g. page_0003.png and page_0003.jpg), the later directory
// entry wins - a page number is unique within the store.
func Load(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read page directory: %w", err)
	}

	s := &Store{
		dir:   dir,
		pages: make(map[int]Page),
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pageFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil || number <= 0 {
			continue
		}
		s.pages[number] = Page{
			Number: number,
			Path:   filepath.Join(dir, entry.Name()),
			Format: normalizeFormat(m[2]),
		}
	}

	return s, nil
}

// Dir returns the directory holding the store's artifacts.
func (s *Store) Dir() string {
	return s.dir
}

// Put stores an image artifact under the given page number, overwriting
// any existing artifact for that number. Returns the stored Page.
//
// The number must be positive; format must be "png", "jpg" or "jpeg".
func (s *Store) Put(number int, data []byte, format string) (Page, error) {
	if number <= 0 {
		return Page{}, fmt.Errorf("invalid page number %d: must be positive", number)
	}
	format = normalizeFormat(format)
	if format != "png" && format != "jpeg" {
		return Page{}, fmt.Errorf("unsupported image format %q", format)
	}

	ext := "png"
	if format == "jpeg" {
		ext = "jpg"
	}
	path := filepath.Join(s.dir, fmt.Sprintf("page_%04d.%s", number, ext))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Page{}, fmt.Errorf("failed to write page %d: %w", number, err)
	}

	page := Page{Number: number, Path: path, Format: format}

	s.mu.Lock()
	// An overwrite may change the extension; drop the stale file so the
	// on-disk layout stays one artifact per number.
	if old, ok := s.pages[number]; ok && old.Path != path {
		os.Remove(old.Path)
	}
	s.pages[number] = page
	s.mu.Unlock()

	return page, nil
}

// Get returns the artifact for a page number, or ErrPageNotFound.
func (s *Store) Get(number int) (Page, error) {
	s.mu.RLock()
	page, ok := s.pages[number]
	s.mu.RUnlock()
	if !ok {
		return Page{}, fmt.Errorf("page %d: %w", number, ErrPageNotFound)
	}
	return page, nil
}

// Pages returns all pages sorted ascending by number. The returned
// slice is a fresh copy: callers may range over it repeatedly or
// concurrently with store mutation.
func (s *Store) Pages() []Page {
	s.mu.RLock()
	pages := make([]Page, 0, len(s.pages))
	for _, p := range s.pages {
		pages = append(pages, p)
	}
	s.mu.RUnlock()

	sort.Slice(pages, func(i, j int) bool {
		return pages[i].Number < pages[j].Number
	})
	return pages
}

// Len returns the number of pages in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

func normalizeFormat(format string) string {
	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		return "jpeg"
	default:
		return strings.ToLower(format)
	}
}
