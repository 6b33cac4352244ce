// Package export turns a cropped raster into a named artifact and hands it
// to a save capability, falling back to a plain directory write when the
// user-directed saver is unavailable.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"

	"github.com/framecut/framecut/internal/metrics"
)

// ErrSaveCancelled reports that the user dismissed the save dialog. It is a
// normal outcome, not a failure.
var ErrSaveCancelled = errors.New("save cancelled by user")

// ErrSaverUnavailable reports that a saver cannot run in this environment
// and the next one in the chain should be tried.
var ErrSaverUnavailable = errors.New("saver unavailable")

// Saver persists a named blob somewhere the user can reach it.
type Saver interface {
	Save(name string, blob []byte) error
}

// DirectorySaver writes artifacts into a fixed directory. It is the fallback
// of last resort and is always available.
type DirectorySaver struct {
	Dir string
}

// Save writes the blob to dir/name.
func (d DirectorySaver) Save(name string, blob []byte) error {
	if err := os.MkdirAll(d.Dir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(d.Dir, name)
	if err := os.WriteFile(path, blob, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FallbackSaver tries the primary saver and falls back when it reports
// unavailability. Cancellation and real errors pass through untouched.
type FallbackSaver struct {
	Primary  Saver
	Fallback Saver
}

// Save attempts the primary saver, then the fallback.
func (f FallbackSaver) Save(name string, blob []byte) error {
	err := f.Primary.Save(name, blob)
	if !errors.Is(err, ErrSaverUnavailable) {
		return err
	}
	metrics.SaveFallbacks.Inc()
	return f.Fallback.Save(name, blob)
}

// ArtifactName derives the export filename by prefixing the source filename.
func ArtifactName(prefix, source string) string {
	return prefix + source
}

// Encode serializes the image in the source's format so a cropped PNG stays
// a PNG and a cropped WebP stays a WebP.
func Encode(img image.Image, format string, jpegQuality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "webp":
		err = webp.Encode(&buf, img, &webp.Options{Lossless: true})
	default:
		return nil, fmt.Errorf("unsupported export format: %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
