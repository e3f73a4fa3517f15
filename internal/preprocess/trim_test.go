package preprocess

import (
	"image"
	"image/color"
	"testing"
)

// createMarginedImage draws a black block inside a white page, leaving
// wide empty margins on all sides.
func createMarginedImage(width, height int, ink image.Rectangle) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if image.Pt(x, y).In(ink) {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func TestTrimMarginsCropsToInk(t *testing.T) {
	ink := image.Rect(100, 120, 300, 280)
	img := createMarginedImage(400, 400, ink)

	out := TrimMargins(img)
	b := out.Bounds()

	if b.Dx() >= 400 || b.Dy() >= 400 {
		t.Fatalf("margins not trimmed: got %dx%d", b.Dx(), b.Dy())
	}
	// The crop must cover the whole ink block plus padding, but not
	// much more than that.
	wantW := ink.Dx() + 2*(trimPadding+sampleStride)
	wantH := ink.Dy() + 2*(trimPadding+sampleStride)
	if b.Dx() > wantW+2*sampleStride || b.Dy() > wantH+2*sampleStride {
		t.Errorf("crop too loose: got %dx%d, want at most %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
	if b.Dx() < ink.Dx() || b.Dy() < ink.Dy() {
		t.Errorf("crop cut into the ink: got %dx%d, ink is %dx%d", b.Dx(), b.Dy(), ink.Dx(), ink.Dy())
	}

	stats := MeasureInk(out)
	if stats.Blank() {
		t.Errorf("trimmed page measured blank (coverage %f)", stats.InkCoverage)
	}
}

func TestTrimMarginsBlankPageUnchanged(t *testing.T) {
	img := createPageImage(200, 200, 0)

	out := TrimMargins(img)
	if out.Bounds() != img.Bounds() {
		t.Errorf("blank page was cropped to %v", out.Bounds())
	}
}

func TestTrimMarginsTightPageUnchanged(t *testing.T) {
	// Ink reaching every edge leaves nothing to trim.
	img := createMarginedImage(120, 120, image.Rect(0, 0, 120, 120))

	out := TrimMargins(img)
	if out.Bounds().Dx() != 120 || out.Bounds().Dy() != 120 {
		t.Errorf("tight page was cropped to %v", out.Bounds())
	}
}

func TestEnhanceWithTrim(t *testing.T) {
	img := createMarginedImage(400, 400, image.Rect(150, 150, 250, 250))

	out := EnhanceWith(img, Options{Trim: true})
	b := out.Bounds()
	if b.Dx() >= 400 || b.Dy() >= 400 {
		t.Errorf("trim stage did not run: got %dx%d", b.Dx(), b.Dy())
	}
}
