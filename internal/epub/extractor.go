// Package epub extracts page images from image-only EPUB containers.
//
// The containers this tool targets carry no usable structural metadata:
// every page is a bitmap inside the zip archive, named with an embedded
// index marker (e.g. "OEBPS/images/index-17.png"). The marker number is
// the page number; it is assigned consistently across runs, which is
// what makes the downstream OCR cache resumable.
package epub

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pagemill/chapterscan/internal/pagestore"
)

// ErrMalformedArchive indicates the container cannot be opened or read
// as a zip archive. It is fatal for the whole run: if the archive is
// broken, no page can be trusted.
var ErrMalformedArchive = errors.New("epub: malformed or unreadable archive")

// pageMarkerPattern captures the page number embedded in an image
// entry's name.
var pageMarkerPattern = regexp.MustCompile(`index-(\d+)`)

// ExtractImages walks the zip container at path and stores every page
// image it finds into store, keyed by the number parsed from the
// entry's index marker.
//
// Entries that are not PNG/JPEG images, or that carry no index marker,
// are skipped silently: image-only EPUBs routinely contain covers,
// fonts and navigation stubs that are not pages. Page numbering gaps
// are expected and preserved.
//
// Returns the number of pages stored. A zip-level failure returns
// ErrMalformedArchive (wrapped); a failure on a single entry aborts the
// extraction with that entry's error, since a partial store would break
// the same-page-same-number contract on resume.
func ExtractImages(path string, store *pagestore.Store) (int, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrMalformedArchive, path, err)
	}
	defer zr.Close()

	count := 0
	for _, f := range zr.File {
		format, ok := imageFormat(f.Name)
		if !ok {
			continue
		}
		m := pageMarkerPattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil || number <= 0 {
			continue
		}

		data, err := readEntry(f)
		if err != nil {
			return count, fmt.Errorf("failed to read entry %s: %w", f.Name, err)
		}
		if _, err := store.Put(number, data, format); err != nil {
			return count, fmt.Errorf("failed to store page %d: %w", number, err)
		}
		count++
	}

	return count, nil
}

// imageFormat reports the page image format for a zip entry name, or
// ok=false for entries that are not page bitmaps.
func imageFormat(name string) (format string, ok bool) {
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".png"):
		return "png", true
	case strings.HasSuffix(strings.ToLower(name), ".jpg"),
		strings.HasSuffix(strings.ToLower(name), ".jpeg"):
		return "jpeg", true
	default:
		return "", false
	}
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
