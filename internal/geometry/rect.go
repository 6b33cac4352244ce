// Package geometry provides the crop rectangle type and the pure conversions
// between display-space and image-space pixel magnitudes.
package geometry

import "fmt"

// Rect is a crop rectangle in image-pixel units, integer-rounded.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Round builds a Rect from float coordinates, rounding each component
// half-away-from-zero.
func Round(x, y, w, h float64) Rect {
	return Rect{X: roundInt(x), Y: roundInt(y), Width: roundInt(w), Height: roundInt(h)}
}

// Ratio returns width/height, or 0 for a degenerate rectangle.
func (r Rect) Ratio() float64 {
	if r.Height == 0 {
		return 0
	}
	return float64(r.Width) / float64(r.Height)
}

// String renders the rectangle as "WxH+X+Y".
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// ClampSize raises Width and Height to at least minSize, leaving the origin
// untouched. Used to prevent a degenerate crop box during live interaction.
func (r Rect) ClampSize(minSize int) Rect {
	if r.Width < minSize {
		r.Width = minSize
	}
	if r.Height < minSize {
		r.Height = minSize
	}
	return r
}

// ClampToBounds fits the rectangle inside a width×height image: the origin is
// clamped to leave room for the current size, then the size is clamped to the
// remaining extent (never below minSize).
func (r Rect) ClampToBounds(imageWidth, imageHeight, minSize int) Rect {
	r = r.ClampSize(minSize)
	r.X = clampInt(r.X, 0, maxInt(imageWidth-r.Width, 0))
	r.Y = clampInt(r.Y, 0, maxInt(imageHeight-r.Height, 0))
	r.Width = clampInt(r.Width, minSize, maxInt(imageWidth-r.X, minSize))
	r.Height = clampInt(r.Height, minSize, maxInt(imageHeight-r.Y, minSize))
	return r
}

// Within reports whether the rectangle satisfies the crop invariant for a
// width×height image.
func (r Rect) Within(imageWidth, imageHeight, minSize int) bool {
	return r.X >= 0 && r.Y >= 0 &&
		r.Width >= minSize && r.Height >= minSize &&
		r.X+r.Width <= imageWidth && r.Y+r.Height <= imageHeight
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
