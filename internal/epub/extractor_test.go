package epub

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pagemill/chapterscan/internal/pagestore"
)

// writeTestEpub creates a zip file with the given name->content entries.
func writeTestEpub(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "book.epub")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close archive: %v", err)
	}
	return path
}

func newTestStore(t *testing.T) *pagestore.Store {
	t.Helper()
	s, err := pagestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

func TestExtractImages(t *testing.T) {
	path := writeTestEpub(t, map[string]string{
		"mimetype":                   "application/epub+zip",
		"OEBPS/images/index-3.png":   "png-3",
		"OEBPS/images/index-1.jpg":   "jpg-1",
		"OEBPS/images/index-10.jpeg": "jpg-10",
		"OEBPS/cover.png":            "no marker, skipped",
		"OEBPS/nav.xhtml":            "not an image",
	})

	store := newTestStore(t)
	n, err := ExtractImages(path, store)
	if err != nil {
		t.Fatalf("ExtractImages failed: %v", err)
	}
	if n != 3 {
		t.Errorf("extracted: got %d pages, want 3", n)
	}

	pages := store.Pages()
	wantNumbers := []int{1, 3, 10}
	if len(pages) != len(wantNumbers) {
		t.Fatalf("store has %d pages, want %d", len(pages), len(wantNumbers))
	}
	for i, p := range pages {
		if p.Number != wantNumbers[i] {
			t.Errorf("pages[%d].Number = %d, want %d", i, p.Number, wantNumbers[i])
		}
	}

	// Spot-check artifact content survived the round trip.
	p, err := store.Get(3)
	if err != nil {
		t.Fatalf("Get(3) failed: %v", err)
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		t.Fatalf("failed to read artifact: %v", err)
	}
	if string(data) != "png-3" {
		t.Errorf("page 3 content: got %q, want %q", data, "png-3")
	}
}

func TestExtractImagesMalformedArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.epub")
	if err := os.WriteFile(path, []byte("this is not a zip"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	store := newTestStore(t)
	_, err := ExtractImages(path, store)
	if !errors.Is(err, ErrMalformedArchive) {
		t.Errorf("got %v, want ErrMalformedArchive", err)
	}
}

func TestExtractImagesNumberingGaps(t *testing.T) {
	// Gaps between page numbers are valid and must be preserved.
	path := writeTestEpub(t, map[string]string{
		"images/index-2.png":   "a",
		"images/index-200.png": "b",
	})

	store := newTestStore(t)
	if _, err := ExtractImages(path, store); err != nil {
		t.Fatalf("ExtractImages failed: %v", err)
	}
	if _, err := store.Get(2); err != nil {
		t.Errorf("Get(2) failed: %v", err)
	}
	if _, err := store.Get(200); err != nil {
		t.Errorf("Get(200) failed: %v", err)
	}
	if _, err := store.Get(100); !errors.Is(err, pagestore.ErrPageNotFound) {
		t.Errorf("Get(100): got %v, want ErrPageNotFound", err)
	}
}
