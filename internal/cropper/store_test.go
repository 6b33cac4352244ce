package cropper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecut/framecut/internal/gallery"
	"github.com/framecut/framecut/internal/geometry"
	"github.com/framecut/framecut/internal/resource"
)

func TestGlobalStore_ReadReturnsCopy(t *testing.T) {
	g := &GlobalStore{}
	assert.Nil(t, g.Read())

	g.Write(gallery.CropSettings{Rect: geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}, AspectRatio: 1})

	first := g.Read()
	require.NotNil(t, first)
	first.Rect.X = 999

	second := g.Read()
	assert.Equal(t, 1, second.Rect.X)
}

func TestPerImageStore(t *testing.T) {
	tracker := resource.NewTracker()
	rec := gallery.NewRecord(tracker, "a.png", "image/png", []byte{1}, 100, 80, "png")
	store := perImageStore{record: rec}

	assert.Nil(t, store.Read())

	store.Write(gallery.CropSettings{Rect: geometry.Rect{X: 5, Y: 6, Width: 7, Height: 8}})
	require.NotNil(t, rec.CropSettings)
	assert.Equal(t, 5, rec.CropSettings.Rect.X)
}
