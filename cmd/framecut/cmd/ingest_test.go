package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecut/framecut/internal/testutil"
)

func TestIngestCommand(t *testing.T) {
	assert.NotNil(t, ingestCmd)
	assert.True(t, strings.HasPrefix(ingestCmd.Use, "ingest"))
	assert.NotEmpty(t, ingestCmd.Short)
	assert.NotEmpty(t, ingestCmd.Long)
}

func TestIngestCommandWithoutFiles(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input files")
}

func writeTestImage(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestIngestCommandAdmitsValidImage(t *testing.T) {
	dir := t.TempDir()
	path := writeTestImage(t, dir, "photo.png", testutil.EncodePNG(t, 100, 80))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", path})

	err := rootCmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "admitted photo.png")
	assert.Contains(t, output, "1 image(s) in session")
}

func TestIngestCommandJSONOutput(t *testing.T) {
	dir := t.TempDir()
	good := writeTestImage(t, dir, "good.jpg", testutil.EncodeJPEG(t, 64, 48))
	bad := writeTestImage(t, dir, "bad.png", []byte("not an image at all, just text"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", good, bad, "--format", "json"})

	err := rootCmd.Execute()
	require.NoError(t, err)

	var result ingestResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result.Admitted, 1)
	assert.Equal(t, "good.jpg", result.Admitted[0].Filename)
	assert.Equal(t, 64, result.Admitted[0].Width)
	require.NotEmpty(t, result.Notices)
}

func TestIngestCommandHonorsMaxImages(t *testing.T) {
	dir := t.TempDir()
	a := writeTestImage(t, dir, "a.png", testutil.EncodePNG(t, 40, 40))
	b := writeTestImage(t, dir, "b.png", testutil.EncodePNG(t, 40, 40))
	c := writeTestImage(t, dir, "c.png", testutil.EncodePNG(t, 40, 40))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	// Flag values persist across executions in-process, so reset the format.
	rootCmd.SetArgs([]string{"ingest", a, b, c, "--max-images", "2", "--format", "text"})

	err := rootCmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "2 image(s) in session")
	assert.Contains(t, output, "Image limit reached")
}
