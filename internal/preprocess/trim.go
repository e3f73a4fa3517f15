package preprocess

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// trimPadding is how many pixels of margin TrimMargins leaves around
// the detected ink box. Tesseract segments text more reliably with a
// little whitespace than with glyphs touching the image edge.
const trimPadding = 12

// TrimMargins crops a page down to its inked region plus a small
// padding, removing the wide scanner margins that dilute the page's
// contrast statistics. A page with no detectable ink is returned
// unchanged.
func TrimMargins(img image.Image) image.Image {
	box, ok := inkBox(img)
	if !ok {
		return img
	}

	bounds := img.Bounds()
	box.Min.X -= trimPadding
	box.Min.Y -= trimPadding
	box.Max.X += trimPadding
	box.Max.Y += trimPadding
	box = box.Intersect(bounds)

	if box == bounds || box.Empty() {
		return img
	}
	return imaging.Crop(img, box)
}

// inkBox scans the image on the sampling grid and returns the bounding
// box of pixels dark enough to be ink.
func inkBox(img image.Image) (image.Rectangle, bool) {
	bounds := img.Bounds()

	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X, bounds.Min.Y
	found := false

	for y := bounds.Min.Y; y < bounds.Max.Y; y += sampleStride {
		for x := bounds.Min.X; x < bounds.Max.X; x += sampleStride {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			l, _, _ := c.Lab()
			if l >= inkLightnessCutoff {
				continue
			}
			found = true
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if !found {
		return image.Rectangle{}, false
	}
	// The grid may have skipped the true edge pixels; widen by one
	// stride to cover them.
	return image.Rect(minX-sampleStride, minY-sampleStride, maxX+sampleStride, maxY+sampleStride), true
}
