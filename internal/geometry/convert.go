package geometry

import "math"

// The interactive crop surface reports rectangles in image-pixel units, but
// numeric entry fields display container-relative (scaled) units. Both
// directions round, so a round-trip may drift by one unit per conversion;
// that tolerance is accepted.

// ToDisplay converts an image-space magnitude to display space, given the
// original extent and the scaled container extent along the same axis.
func ToDisplay(actual, originalExtent, containerExtent int) int {
	if originalExtent == 0 {
		return 0
	}
	return roundInt(float64(actual) / float64(originalExtent) * float64(containerExtent))
}

// ToActual converts a display-space magnitude back to image space.
func ToActual(display, originalExtent, containerExtent int) int {
	if containerExtent == 0 {
		return 0
	}
	return roundInt(float64(display) / float64(containerExtent) * float64(originalExtent))
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
