// Package testutil generates synthetic images and encoded payloads for tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/require"
)

// GradientImage creates a width×height RGBA image with a deterministic
// per-pixel gradient, so crops of different regions differ.
func GradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x % 256),
				G: uint8(y % 256),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}

// EncodePNG encodes a gradient image of the given size as PNG bytes.
func EncodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, GradientImage(width, height)))
	return buf.Bytes()
}

// EncodeJPEG encodes a gradient image of the given size as JPEG bytes.
func EncodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, GradientImage(width, height), &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

// EncodeGIF encodes a gradient image of the given size as GIF bytes.
func EncodeGIF(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, GradientImage(width, height), nil))
	return buf.Bytes()
}

// EncodeWebP encodes a gradient image of the given size as WebP bytes.
func EncodeWebP(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, webp.Encode(&buf, GradientImage(width, height), &webp.Options{Lossless: true}))
	return buf.Bytes()
}

// TruncatedPNG returns a PNG whose header survives but whose pixel data is
// cut off, so header decoding succeeds while a full read fails.
func TruncatedPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	full := EncodePNG(t, width, height)
	// Keep the signature and IHDR chunk, drop the rest of the stream.
	return full[:40]
}
