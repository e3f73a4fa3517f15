package pagestore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPutAndGet(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	data := []byte("fake png bytes")
	page, err := s.Put(3, data, "png")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if page.Number != 3 {
		t.Errorf("Number: got %d, want 3", page.Number)
	}
	if page.Format != "png" {
		t.Errorf("Format: got %q, want png", page.Format)
	}

	got, err := s.Get(3)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Path != page.Path {
		t.Errorf("Path: got %q, want %q", got.Path, page.Path)
	}

	onDisk, err := os.ReadFile(got.Path)
	if err != nil {
		t.Fatalf("failed to read artifact: %v", err)
	}
	if string(onDisk) != string(data) {
		t.Errorf("artifact bytes differ from Put input")
	}
}

func TestGetMissingPage(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = s.Get(42)
	if !errors.Is(err, ErrPageNotFound) {
		t.Errorf("Get(42): got %v, want ErrPageNotFound", err)
	}
}

func TestPutRejectsInvalidInput(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := s.Put(0, []byte("x"), "png"); err == nil {
		t.Error("Put(0) should fail: page numbers must be positive")
	}
	if _, err := s.Put(-5, []byte("x"), "png"); err == nil {
		t.Error("Put(-5) should fail: page numbers must be positive")
	}
	if _, err := s.Put(1, []byte("x"), "tiff"); err == nil {
		t.Error("Put with tiff should fail: unsupported format")
	}
}

func TestPutOverwritesSameNumber(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := s.Put(7, []byte("first"), "png"); err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	page, err := s.Put(7, []byte("second"), "jpg")
	if err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1 (overwrite, not duplicate)", s.Len())
	}

	got, err := s.Get(7)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Format != "jpeg" {
		t.Errorf("Format after overwrite: got %q, want jpeg", got.Format)
	}

	onDisk, err := os.ReadFile(got.Path)
	if err != nil {
		t.Fatalf("failed to read artifact: %v", err)
	}
	if string(onDisk) != "second" {
		t.Errorf("artifact: got %q, want %q", onDisk, "second")
	}
	// The stale png artifact must be gone.
	if _, err := os.Stat(page.Path); err != nil {
		t.Fatalf("stat jpg artifact: %v", err)
	}
	stale := filepath.Join(s.Dir(), "page_0007.png")
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale artifact %s still on disk", stale)
	}
}

func TestPagesOrderedWithGaps(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Insert out of order with gaps - both are valid.
	for _, n := range []int{12, 3, 47, 5} {
		if _, err := s.Put(n, []byte("img"), "png"); err != nil {
			t.Fatalf("Put(%d) failed: %v", n, err)
		}
	}

	want := []int{3, 5, 12, 47}
	for run := 0; run < 2; run++ { // restartable: identical on repeat
		pages := s.Pages()
		if len(pages) != len(want) {
			t.Fatalf("run %d: got %d pages, want %d", run, len(pages), len(want))
		}
		for i, p := range pages {
			if p.Number != want[i] {
				t.Errorf("run %d: pages[%d].Number = %d, want %d", run, i, p.Number, want[i])
			}
		}
	}
}

func TestLoadRebuildsIdenticalMapping(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for _, n := range []int{1, 2, 9, 130} {
		if _, err := s.Put(n, []byte("img"), "png"); err != nil {
			t.Fatalf("Put(%d) failed: %v", n, err)
		}
	}

	// Unrelated files must not produce pages.
	for _, name := range []string{"cover.png", "page_abc.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	orig := s.Pages()
	got := loaded.Pages()
	if len(got) != len(orig) {
		t.Fatalf("Load: got %d pages, want %d", len(got), len(orig))
	}
	for i := range orig {
		if got[i] != orig[i] {
			t.Errorf("page %d: got %+v, want %+v", i, got[i], orig[i])
		}
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Load on a missing directory should fail")
	}
}
