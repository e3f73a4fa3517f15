// Package home locates and lays out the chapterscan home directory,
// which holds the extracted page images and recognition caches for
// every book the tool has processed.
//
// # Layout
//
//	~/.chapterscan/
//	    config.yaml
//	    books/
//	        <book-id>/
//	            images/    page_0001.png, page_0002.jpg, ...
//	            ocr/       page_0001.txt, page_0002.txt, ...
//
// Book IDs are derived from the source file name, so re-running the
// tool against the same book reuses the extracted images and the
// recognition cache.
package home

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDirName is the default name for the chapterscan home
	// directory.
	DefaultDirName = ".chapterscan"

	// BooksDirName is the subdirectory holding per-book data.
	BooksDirName = "books"

	// ImagesDirName is the per-book subdirectory for page image
	// artifacts.
	ImagesDirName = "images"

	// OCRDirName is the per-book subdirectory for recognition cache
	// entries.
	OCRDirName = "ocr"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the chapterscan home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.chapterscan).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// BooksPath returns the path to the books directory.
func (d *Dir) BooksPath() string {
	return filepath.Join(d.path, BooksDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// BookDir returns the directory holding a book's data.
func (d *Dir) BookDir(bookID string) string {
	return filepath.Join(d.BooksPath(), bookID)
}

// ImagesDir returns the directory for a book's page image artifacts.
func (d *Dir) ImagesDir(bookID string) string {
	return filepath.Join(d.BookDir(bookID), ImagesDirName)
}

// OCRDir returns the directory for a book's recognition cache.
func (d *Dir) OCRDir(bookID string) string {
	return filepath.Join(d.BookDir(bookID), OCRDirName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.BooksPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create books directory: %w", err)
	}
	return nil
}

// EnsureBookDirs creates a book's image and recognition directories.
func (d *Dir) EnsureBookDirs(bookID string) error {
	if err := os.MkdirAll(d.ImagesDir(bookID), 0o755); err != nil {
		return fmt.Errorf("failed to create images directory: %w", err)
	}
	if err := os.MkdirAll(d.OCRDir(bookID), 0o755); err != nil {
		return fmt.Errorf("failed to create ocr directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// BookID derives a stable book identifier from a source file path:
// the base name without its extension, lowercased, with whitespace
// collapsed to single hyphens.
func BookID(sourcePath string) string {
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ToLower(strings.TrimSpace(base))
	return strings.Join(strings.Fields(base), "-")
}
