package geometry

import "math"

// Selector names a preset aspect-ratio choice.
type Selector string

const (
	SelectorFree     Selector = "free"
	SelectorSquare   Selector = "square"
	SelectorOriginal Selector = "original"
)

// originalMatchTolerance is the absolute tolerance when matching a numeric
// ratio back to the original image's ratio. The mapping is deliberately
// asymmetric: a dragged rectangle whose ratio only nearly matches the
// original classifies as free-form on the next read.
const originalMatchTolerance = 1e-4

// SelectorToRatio maps a selector to its numeric aspect ratio. Free-form is
// ratio 0, meaning the crop surface applies no lock.
func SelectorToRatio(s Selector, originalWidth, originalHeight int) float64 {
	switch s {
	case SelectorSquare:
		return 1
	case SelectorOriginal:
		if originalHeight == 0 {
			return 0
		}
		return float64(originalWidth) / float64(originalHeight)
	default:
		return 0
	}
}

// RatioToSelector maps a numeric ratio back to a selector. Square matches 1
// exactly; original matches the image's own ratio within tolerance; anything
// else is free-form.
func RatioToSelector(ratio float64, originalWidth, originalHeight int) Selector {
	if ratio == 1 {
		return SelectorSquare
	}
	if originalHeight != 0 {
		original := float64(originalWidth) / float64(originalHeight)
		if math.Abs(ratio-original) <= originalMatchTolerance {
			return SelectorOriginal
		}
	}
	return SelectorFree
}

// ParseSelector returns the selector named by s, defaulting to free-form for
// anything unrecognized.
func ParseSelector(s string) Selector {
	switch Selector(s) {
	case SelectorSquare, SelectorOriginal:
		return Selector(s)
	default:
		return SelectorFree
	}
}
