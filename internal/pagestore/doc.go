// Package pagestore maintains a book's numbered page-image artifacts
// on disk and an ordered in-memory index over them.
//
// # Artifact Layout
//
// Every page is one file named page_NNNN.<ext> (zero-padded to four
// digits, png or jpg). The page number is the only key: gaps in the
// numbering are valid, and the full mapping can be rebuilt from the
// filenames alone with Load, which is what makes interrupted runs
// resumable.
//
// # Concurrency
//
// A Store is safe for concurrent use. Pages returns a fresh sorted
// copy, so callers may range over it repeatedly while other goroutines
// keep writing.
package pagestore
