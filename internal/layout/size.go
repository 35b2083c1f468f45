package layout

import "math"

// DefaultChartArea is the pixel area of a chart filling a whole slide.
const DefaultChartArea = 222600

// EMUPerInch is the number of English Metric Units in an inch.
const EMUPerInch = 914400

const pixelsPerInch = 220

// OptimizeSize returns the width and height with the given aspect ratio
// (height / width) covering area.
func OptimizeSize(aspect, area float64) (width, height float64) {
	width = math.Sqrt(area / aspect)
	return width, width * aspect
}

// EMUToPixels converts EMU to whole pixels.
func EMUToPixels(emu float64) int64 {
	return int64(emu * pixelsPerInch / EMUPerInch)
}
