// Package scan orchestrates chapter discovery across a page store.
//
// Two scan modes share the same pipeline of primitives (page store ->
// recognition cache -> classifier -> title extractor):
//
//   - TOC scan: inspect only the book's opening pages and harvest
//     titles from contents and chapter-start pages. Fast, and usually
//     sufficient for books with a printed table of contents.
//   - Full scan: inspect every page and record each chapter-start page
//     as a page-anchored boundary. The fallback when no contents page
//     exists or the TOC scan came up empty.
//
// # Determinism
//
// Recognition is the dominant cost and runs concurrently under a
// worker bound, but results are accumulated in a single sequential
// pass in ascending page order. For a fixed page store, repeated scans
// produce byte-identical candidate sequences: discovery order reflects
// page order, never goroutine completion order.
//
// # Failure Model
//
// No per-page failure aborts a scan. A page whose recognition failed
// (or whose cache request failed) classifies as ordinary content,
// contributes no candidates, and leaves a warning in the final
// ScanResult. Only archive-level failures, which are handled before a
// store exists, terminate a run.
package scan
