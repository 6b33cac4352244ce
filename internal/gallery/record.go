// Package gallery owns the session: the bounded, filename-ordered collection
// of admitted images and their crop metadata.
package gallery

import (
	"github.com/google/uuid"

	"github.com/framecut/framecut/internal/geometry"
	"github.com/framecut/framecut/internal/resource"
)

// CropSettings is the latest-value crop state for an image: the rectangle in
// image-pixel units plus the aspect-ratio lock (0 means free-form).
type CropSettings struct {
	Rect        geometry.Rect
	AspectRatio float64
}

// Record is one admitted image. CropHistory is an append-only log of
// committed rectangles; CropSettings is a mutable latest-value cell. The two
// deliberately have different update disciplines so that history survives
// settings resets.
type Record struct {
	ID          string
	Filename    string
	ContentType string
	SizeBytes   int64
	Width       int
	Height      int
	Format      string

	// Data holds the source bytes; the tracked display resource wraps it.
	Data []byte

	Cropped      bool
	CropHistory  []geometry.Rect
	CropSettings *CropSettings

	// Canvas stores the crop surface's canvas geometry between edits. The
	// session treats it as opaque.
	Canvas any

	display resource.Handle
}

// NewRecord creates a record with a collision-free identifier and registers
// its display resource with the tracker.
func NewRecord(tracker *resource.Tracker, filename, contentType string, data []byte, width, height int, format string) *Record {
	r := &Record{
		ID:          uuid.NewString(),
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		Width:       width,
		Height:      height,
		Format:      format,
		Data:        data,
	}
	r.display = tracker.Track("display "+filename, func() error {
		r.Data = nil
		return nil
	})
	return r
}

// AppendHistory appends a committed rectangle to the audit log.
func (r *Record) AppendHistory(rect geometry.Rect) {
	r.CropHistory = append(r.CropHistory, rect)
}

// ClearSettings drops the stored crop settings and canvas geometry. The
// history is untouched.
func (r *Record) ClearSettings() {
	r.CropSettings = nil
	r.Canvas = nil
}
