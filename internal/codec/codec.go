// Package codec abstracts the platform image codecs behind two small
// capabilities: a decoder that yields natural pixel dimensions, and an
// integrity probe that catches payloads whose headers decode but whose pixel
// data does not.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Info holds the header-level facts about an encoded image.
type Info struct {
	Format string
	Width  int
	Height int
}

// Decoder reads natural pixel dimensions from an encoded image.
type Decoder interface {
	Decode(data []byte) (Info, error)
}

// Prober verifies that an image's pixel data is actually readable.
type Prober interface {
	Sample(data []byte) error
}

// Error tags a codec failure with the operation that produced it.
type Error struct {
	Operation string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("image %s failed: %v", e.Operation, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Std implements Decoder and Prober on the registered stdlib and x/image
// codecs (jpeg, png, gif, webp).
type Std struct{}

// Decode reads only the image header and returns format and dimensions.
func (Std) Decode(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, &Error{Operation: "decode", Err: err}
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Sample fully decodes the payload and performs a 1x1 draw-and-read probe.
// Certain truncated or malformed files carry valid headers but fail here.
func (Std) Sample(data []byte) error {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return &Error{Operation: "probe decode", Err: err}
	}

	probe := image.NewRGBA(image.Rect(0, 0, 1, 1))
	draw.Draw(probe, probe.Bounds(), img, img.Bounds().Min, draw.Src)
	_ = probe.RGBAAt(0, 0)
	return nil
}

// FullDecode decodes the complete image for cropping and export.
func FullDecode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", &Error{Operation: "decode", Err: err}
	}
	return img, format, nil
}
