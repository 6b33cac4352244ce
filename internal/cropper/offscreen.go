package cropper

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/framecut/framecut/internal/geometry"
)

// Offscreen is an in-process crop surface backed by the decoded image. It
// gives the CLI and tests a complete editor lifecycle without a GUI.
type Offscreen struct {
	img       image.Image
	width     int
	height    int
	container ContainerData
	canvas    CanvasData
	rect      geometry.Rect
	aspect    float64
	sink      EventSink
	destroyed bool
}

// NewOffscreen creates a surface over the image and reports readiness to the
// sink. The container defaults to the image's natural extent (unscaled).
func NewOffscreen(img image.Image, sink EventSink) (Surface, error) {
	if img == nil {
		return nil, fmt.Errorf("offscreen surface needs a decoded image")
	}
	b := img.Bounds()
	s := &Offscreen{
		img:       img,
		width:     b.Dx(),
		height:    b.Dy(),
		container: ContainerData{Width: b.Dx(), Height: b.Dy()},
		canvas:    CanvasData{Width: float64(b.Dx()), Height: float64(b.Dy())},
		sink:      sink,
	}
	if sink != nil {
		sink.SurfaceReady()
	}
	return s, nil
}

// Data returns the current crop rectangle.
func (o *Offscreen) Data() geometry.Rect {
	return o.rect
}

// SetData applies a rectangle programmatically, clamped to the image bounds.
// No crop event fires; programmatic writes do not echo.
func (o *Offscreen) SetData(rect geometry.Rect) {
	o.rect = rect.ClampToBounds(o.width, o.height, 1)
}

// CanvasData returns the canvas geometry.
func (o *Offscreen) CanvasData() CanvasData {
	return o.canvas
}

// SetCanvasData restores previously stored canvas geometry.
func (o *Offscreen) SetCanvasData(geom CanvasData) {
	o.canvas = geom
}

// ContainerData returns the scaled container extent.
func (o *Offscreen) ContainerData() ContainerData {
	return o.container
}

// SetContainerData overrides the container extent, for callers simulating a
// scaled-down display.
func (o *Offscreen) SetContainerData(c ContainerData) {
	o.container = c
}

// SetAspectRatio locks interactive resizing to the ratio; 0 unlocks.
func (o *Offscreen) SetAspectRatio(ratio float64) {
	o.aspect = ratio
}

// Drag simulates a user interaction: the aspect lock is applied, the
// rectangle is fitted to the image bounds, and a crop event fires. Sizes
// below one pixel are passed through so the manager's clamping is exercised
// the way a live surface would exercise it.
func (o *Offscreen) Drag(rect geometry.Rect) {
	if o.aspect > 0 && rect.Width > 0 {
		rect.Height = int(math.Round(float64(rect.Width) / o.aspect))
	}
	if rect.Width > o.width {
		rect.Width = o.width
	}
	if rect.Height > o.height {
		rect.Height = o.height
	}
	if rect.X+rect.Width > o.width {
		rect.X = o.width - rect.Width
	}
	if rect.Y+rect.Height > o.height {
		rect.Y = o.height - rect.Height
	}
	if rect.X < 0 {
		rect.X = 0
	}
	if rect.Y < 0 {
		rect.Y = 0
	}
	o.rect = rect
	if o.sink != nil {
		o.sink.CropChanged(rect)
	}
}

// CroppedRegion renders the current rectangle as a standalone raster.
func (o *Offscreen) CroppedRegion() (image.Image, error) {
	if o.destroyed {
		return nil, fmt.Errorf("surface already destroyed")
	}
	r := o.rect
	if r.Width < 1 || r.Height < 1 {
		return nil, fmt.Errorf("degenerate crop rectangle %s", r)
	}
	min := o.img.Bounds().Min
	crop := image.Rect(min.X+r.X, min.Y+r.Y, min.X+r.X+r.Width, min.Y+r.Y+r.Height)
	return imaging.Crop(o.img, crop), nil
}

// Destroy tears the surface down; further region extraction fails.
func (o *Offscreen) Destroy() {
	o.destroyed = true
	o.img = nil
}
