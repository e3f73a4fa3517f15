// Package preprocess cleans up scanned page images before recognition
// and measures how much ink a page carries.
//
// # Pipeline
//
// EnhanceWith runs, in order: margin trim, grayscale, Lanczos upscale,
// median denoise, contrast adjustment, sharpening, and threshold
// binarization, each stage individually switchable. The binarization
// threshold is derived from the page's measured mean lightness, so a
// yellowed scan and a crisp white render both end up with dark text on
// white paper.
//
// # Ink Statistics
//
// MeasureInk samples the page on a fixed grid and maps each pixel to
// Lab lightness. The resulting coverage figure drives blank-page
// detection and the binarization threshold.
package preprocess
