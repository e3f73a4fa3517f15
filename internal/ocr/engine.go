package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/otiai10/gosseract/v2"
)

// Recognizer is the text-recognition capability: given a page image on
// disk, return the recognized text or fail. Implementations must be
// safe for concurrent use across different images.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// defaultAttempts bounds how often a failing recognition is retried
// before the failure is reported. Tesseract occasionally fails
// transiently under memory pressure; a second attempt is cheap next to
// giving up on the page for the lifetime of the cache.
const defaultAttempts = 2

// TesseractRecognizer recognizes page images with the Tesseract OCR
// engine.
//
// The language hint uses Tesseract's combined syntax, e.g.
// "chi_sim+eng" for Simplified Chinese with embedded Latin. A fresh
// gosseract client is created per call: clients are cheap relative to
// recognition itself and are not safe to share across goroutines.
type TesseractRecognizer struct {
	languages []string
	attempts  uint
}

// NewTesseractRecognizer creates a recognizer for the given language
// hint ("chi_sim+eng", "eng", ...). An empty hint defaults to "eng".
func NewTesseractRecognizer(language string) *TesseractRecognizer {
	if language == "" {
		language = "eng"
	}
	return &TesseractRecognizer{
		languages: strings.Split(language, "+"),
		attempts:  defaultAttempts,
	}
}

// Recognize runs Tesseract over the image file and returns the
// recognized text with original spacing and line breaks. Transient
// failures are retried a bounded number of times; the last error is
// returned once attempts are exhausted.
func (r *TesseractRecognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	var text string
	err := retry.Do(
		func() error {
			t, err := r.recognizeOnce(imagePath)
			if err != nil {
				return err
			}
			text = t
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("tesseract failed on %s: %w", imagePath, err)
	}
	return text, nil
}

func (r *TesseractRecognizer) recognizeOnce(imagePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.languages...); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	return client.Text()
}
