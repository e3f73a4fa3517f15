package preprocess

import (
	"image"
	"image/color"
	"testing"
)

// createPageImage creates a white page with an optional block of black
// "text" pixels covering the given fraction of rows.
func createPageImage(width, height int, inkRows int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if y < inkRows {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func TestMeasureInkBlankPage(t *testing.T) {
	stats := MeasureInk(createPageImage(200, 200, 0))

	if !stats.Blank() {
		t.Errorf("all-white page: Blank() = false, want true (coverage %f)", stats.InkCoverage)
	}
	if stats.MeanLightness < 0.95 {
		t.Errorf("all-white page: MeanLightness = %f, want near 1", stats.MeanLightness)
	}
	if stats.SampledPixels == 0 {
		t.Error("SampledPixels = 0, want > 0")
	}
}

func TestMeasureInkTextPage(t *testing.T) {
	// A quarter of the page is ink: plainly not blank.
	stats := MeasureInk(createPageImage(200, 200, 50))

	if stats.Blank() {
		t.Errorf("text page: Blank() = true, want false (coverage %f)", stats.InkCoverage)
	}
	if stats.InkCoverage < 0.2 || stats.InkCoverage > 0.3 {
		t.Errorf("InkCoverage = %f, want ~0.25", stats.InkCoverage)
	}
}

func TestEnhanceUpscales(t *testing.T) {
	img := createPageImage(100, 80, 20)

	out := EnhanceWith(img, Options{Scale: 2})
	b := out.Bounds()
	if b.Dx() != 200 || b.Dy() != 160 {
		t.Errorf("enhanced size: got %dx%d, want 200x160", b.Dx(), b.Dy())
	}
}

func TestEnhanceDefaultPipelinePreservesInk(t *testing.T) {
	img := createPageImage(100, 100, 30)

	out := Enhance(img)

	// The full pipeline (including binarization) must keep text dark
	// and paper light, not wash the page out.
	stats := MeasureInk(out)
	if stats.Blank() {
		t.Errorf("enhanced page measured blank (coverage %f)", stats.InkCoverage)
	}
	if stats.InkCoverage < 0.15 || stats.InkCoverage > 0.45 {
		t.Errorf("enhanced InkCoverage = %f, want roughly 0.3", stats.InkCoverage)
	}
}

func TestEnhanceWithNoopOptions(t *testing.T) {
	img := createPageImage(60, 60, 10)

	out := EnhanceWith(img, Options{})
	b := out.Bounds()
	if b.Dx() != 60 || b.Dy() != 60 {
		t.Errorf("no-op options changed size: got %dx%d, want 60x60", b.Dx(), b.Dy())
	}
}

func TestEnhanceWithSharpen(t *testing.T) {
	img := createPageImage(80, 80, 20)

	out := EnhanceWith(img, Options{Sharpen: true})
	b := out.Bounds()
	if b.Dx() != 80 || b.Dy() != 80 {
		t.Errorf("sharpen changed size: got %dx%d, want 80x80", b.Dx(), b.Dy())
	}
	if MeasureInk(out).Blank() {
		t.Error("sharpened page measured blank")
	}
}
