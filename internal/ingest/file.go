// Package ingest admits batches of untrusted files into the session under
// capacity, type, size, duplicate, and validation constraints, producing one
// ordered set of user-facing notices per batch.
package ingest

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// File is one candidate blob offered for admission. ContentType is the
// declared type; it is checked against the filename's extension, never
// trusted on its own.
type File struct {
	Name        string
	ContentType string
	SizeBytes   int64
	Data        []byte
}

// acceptedExtensions maps each accepted content type to the filename
// extensions it may legitimately carry.
var acceptedExtensions = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/gif":  {".gif"},
	"image/webp": {".webp"},
}

// TypeAccepted reports whether the declared content type is in the accepted
// raster set.
func TypeAccepted(contentType string) bool {
	_, ok := acceptedExtensions[normalizeType(contentType)]
	return ok
}

// ExtensionMatches reports whether the filename's extension belongs to the
// declared content type's accepted extension list.
func ExtensionMatches(contentType, name string) bool {
	exts, ok := acceptedExtensions[normalizeType(contentType)]
	if !ok {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func normalizeType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// LoadFile reads a candidate from disk, sniffing the content type from the
// payload the way a browser would.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading a user-provided image path is expected
	if err != nil {
		return File{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return File{
		Name:        filepath.Base(path),
		ContentType: http.DetectContentType(data),
		SizeBytes:   int64(len(data)),
		Data:        data,
	}, nil
}
