// Package ocr recognizes page images as text and caches the results.
//
// The package has two halves:
//
//   - TesseractRecognizer wraps the Tesseract OCR engine (via
//     gosseract/v2) behind the Recognizer interface.
//   - Cache is an idempotent, resumable wrapper around a Recognizer:
//     the first request for a page runs recognition and persists the
//     text; every later request returns the persisted text without
//     recognizing again.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract tesseract-lang
//
// Language data files are required for each language used, e.g.
// tesseract-ocr-chi-sim for Simplified Chinese.
//
// # Cache Layout
//
// One UTF-8 text file per page number, page_NNNN.txt, in the cache
// directory. Entries are human-readable and addressable by page number
// alone. The pipeline never overwrites an existing entry; to force
// re-recognition of a page, delete its file.
//
// # Failure Degradation
//
// A failed recognition (engine error, unreadable artifact) persists an
// empty string and surfaces the failure as a non-fatal warning on the
// Result. A batch scan therefore never aborts because one page is bad,
// at the documented cost that a later run cannot distinguish
// "recognized as empty" from "recognition failed".
package ocr
