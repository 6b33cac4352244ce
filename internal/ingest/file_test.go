package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecut/framecut/internal/testutil"
)

func TestTypeAccepted(t *testing.T) {
	assert.True(t, TypeAccepted("image/jpeg"))
	assert.True(t, TypeAccepted("image/png"))
	assert.True(t, TypeAccepted("image/gif"))
	assert.True(t, TypeAccepted("image/webp"))
	assert.True(t, TypeAccepted("IMAGE/PNG"))
	assert.True(t, TypeAccepted("image/png; charset=binary"))

	assert.False(t, TypeAccepted("image/bmp"))
	assert.False(t, TypeAccepted("application/pdf"))
	assert.False(t, TypeAccepted(""))
}

func TestExtensionMatches(t *testing.T) {
	assert.True(t, ExtensionMatches("image/jpeg", "photo.jpg"))
	assert.True(t, ExtensionMatches("image/jpeg", "photo.JPEG"))
	assert.True(t, ExtensionMatches("image/png", "shot.png"))
	assert.True(t, ExtensionMatches("image/webp", "anim.webp"))

	assert.False(t, ExtensionMatches("image/png", "photo.jpg"))
	assert.False(t, ExtensionMatches("image/jpeg", "photo"))
	assert.False(t, ExtensionMatches("text/plain", "notes.txt"))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.png")
	require.NoError(t, os.WriteFile(path, testutil.EncodePNG(t, 32, 32), 0o600))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sample.png", f.Name)
	assert.Equal(t, "image/png", f.ContentType)
	assert.Equal(t, int64(len(f.Data)), f.SizeBytes)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
