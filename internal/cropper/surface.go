// Package cropper owns the crop editor: the surface capability contract,
// the per-image and global settings stores, and the state manager that
// drives open, edit, commit, and cancel.
package cropper

import (
	"image"

	"github.com/framecut/framecut/internal/geometry"
)

// CanvasData is the crop surface's canvas geometry. The session stores it
// between edits without interpreting it.
type CanvasData struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// ContainerData is the on-screen scaled extent of the surface's container.
// Numeric entry fields display values in this space.
type ContainerData struct {
	Width  int
	Height int
}

// EventSink receives the surface's lifecycle and interaction events.
type EventSink interface {
	SurfaceReady()
	CropChanged(rect geometry.Rect)
}

// Surface is the external interactive crop capability. Rectangles are in
// image-pixel units. The core assumes nothing beyond these operations.
type Surface interface {
	Data() geometry.Rect
	SetData(rect geometry.Rect)
	CanvasData() CanvasData
	SetCanvasData(geom CanvasData)
	ContainerData() ContainerData
	SetAspectRatio(ratio float64)
	CroppedRegion() (image.Image, error)
	Destroy()
}

// SurfaceFactory creates a surface over a decoded image and wires its events
// to the sink. The surface must emit SurfaceReady before interaction.
type SurfaceFactory func(img image.Image, sink EventSink) (Surface, error)
