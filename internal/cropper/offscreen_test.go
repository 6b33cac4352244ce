package cropper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecut/framecut/internal/geometry"
	"github.com/framecut/framecut/internal/testutil"
)

type sinkSpy struct {
	ready bool
	crops []geometry.Rect
}

func (s *sinkSpy) SurfaceReady()                  { s.ready = true }
func (s *sinkSpy) CropChanged(rect geometry.Rect) { s.crops = append(s.crops, rect) }

func TestOffscreen_ReadyAndDefaults(t *testing.T) {
	sink := &sinkSpy{}
	s, err := NewOffscreen(testutil.GradientImage(100, 80), sink)
	require.NoError(t, err)

	assert.True(t, sink.ready)
	assert.Equal(t, ContainerData{Width: 100, Height: 80}, s.ContainerData())
}

func TestOffscreen_NilImage(t *testing.T) {
	_, err := NewOffscreen(nil, nil)
	assert.Error(t, err)
}

func TestOffscreen_SetData_ClampsToBounds(t *testing.T) {
	s, err := NewOffscreen(testutil.GradientImage(100, 80), nil)
	require.NoError(t, err)

	s.SetData(geometry.Rect{X: 90, Y: 70, Width: 50, Height: 50})
	got := s.Data()
	assert.True(t, got.Within(100, 80, 1))
}

func TestOffscreen_Drag_AppliesAspectLockAndFiresEvent(t *testing.T) {
	sink := &sinkSpy{}
	raw, err := NewOffscreen(testutil.GradientImage(100, 80), sink)
	require.NoError(t, err)
	s := raw.(*Offscreen)

	s.SetAspectRatio(2)
	s.Drag(geometry.Rect{X: 0, Y: 0, Width: 40, Height: 99})

	require.Len(t, sink.crops, 1)
	assert.Equal(t, geometry.Rect{X: 0, Y: 0, Width: 40, Height: 20}, sink.crops[0])
}

func TestOffscreen_Drag_CapsOversizedRect(t *testing.T) {
	sink := &sinkSpy{}
	raw, err := NewOffscreen(testutil.GradientImage(100, 80), sink)
	require.NoError(t, err)

	raw.(*Offscreen).Drag(geometry.Rect{X: 0, Y: 0, Width: 500, Height: 500})

	require.Len(t, sink.crops, 1)
	assert.Equal(t, geometry.Rect{X: 0, Y: 0, Width: 100, Height: 80}, sink.crops[0])
	assert.True(t, sink.crops[0].Within(100, 80, 1))
}

func TestOffscreen_CroppedRegion(t *testing.T) {
	raw, err := NewOffscreen(testutil.GradientImage(100, 80), nil)
	require.NoError(t, err)
	s := raw.(*Offscreen)

	s.SetData(geometry.Rect{X: 10, Y: 20, Width: 30, Height: 25})
	img, err := s.CroppedRegion()
	require.NoError(t, err)
	assert.Equal(t, 30, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())

	// The crop starts at the requested offset, not at the image origin.
	want := testutil.GradientImage(100, 80).RGBAAt(10, 20)
	r, g, b, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	assert.Equal(t, uint32(want.R)*0x101, r)
	assert.Equal(t, uint32(want.G)*0x101, g)
	assert.Equal(t, uint32(want.B)*0x101, b)
}

func TestOffscreen_DestroyedSurfaceRefusesExtraction(t *testing.T) {
	raw, err := NewOffscreen(testutil.GradientImage(40, 40), nil)
	require.NoError(t, err)

	raw.Destroy()
	_, err = raw.CroppedRegion()
	assert.Error(t, err)
}
