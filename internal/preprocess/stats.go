package preprocess

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// blankInkThreshold is the ink coverage below which a page is treated
// as blank. Scanned books carry blank separator pages; recognizing them
// wastes the most expensive step in the pipeline for no text.
const blankInkThreshold = 0.003

// inkLightnessCutoff is the Lab lightness below which a sampled pixel
// counts as ink rather than paper.
const inkLightnessCutoff = 0.55

// sampleStride is the pixel sampling step used by MeasureInk. Page
// scans are large; a stride keeps measurement cheap while remaining
// representative.
const sampleStride = 4

// InkStats summarizes how much of a page carries ink.
type InkStats struct {
	// MeanLightness is the average Lab lightness of sampled pixels,
	// 0 (black) to 1 (white).
	MeanLightness float64 `json:"mean_lightness"`

	// InkCoverage is the fraction of sampled pixels dark enough to be
	// ink.
	InkCoverage float64 `json:"ink_coverage"`

	// SampledPixels is how many pixels contributed to the measurement.
	SampledPixels int `json:"sampled_pixels"`
}

// Blank reports whether the page is effectively empty of ink.
func (s InkStats) Blank() bool {
	return s.InkCoverage < blankInkThreshold
}

// MeasureInk samples the image on a fixed grid and measures lightness
// in the Lab color space, which tracks perceived darkness far better
// than raw RGB averages on yellowed or tinted paper.
func MeasureInk(img image.Image) InkStats {
	bounds := img.Bounds()

	var (
		total   float64
		inked   int
		sampled int
	)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += sampleStride {
		for x := bounds.Min.X; x < bounds.Max.X; x += sampleStride {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue // fully transparent pixel
			}
			l, _, _ := c.Lab()
			total += l
			if l < inkLightnessCutoff {
				inked++
			}
			sampled++
		}
	}

	if sampled == 0 {
		return InkStats{}
	}
	return InkStats{
		MeanLightness: total / float64(sampled),
		InkCoverage:   float64(inked) / float64(sampled),
		SampledPixels: sampled,
	}
}
