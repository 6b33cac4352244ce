package gallery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecut/framecut/internal/geometry"
	"github.com/framecut/framecut/internal/resource"
)

func newRecord(tracker *resource.Tracker, name string) *Record {
	return NewRecord(tracker, name, "image/png", []byte{1, 2, 3}, 100, 80, "png")
}

func TestSession_CapacityInvariant(t *testing.T) {
	tracker := resource.NewTracker()
	s := NewSession(3, tracker)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Add(newRecord(tracker, fmt.Sprintf("img%d.png", i))))
	}
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 0, s.FreeSlots())

	err := s.Add(newRecord(tracker, "one-too-many.png"))
	assert.ErrorIs(t, err, ErrSessionFull)
	assert.Equal(t, 3, s.Len())
}

func TestSession_OrderedByFilename(t *testing.T) {
	tracker := resource.NewTracker()
	s := NewSession(10, tracker)

	for _, name := range []string{"zebra.png", "apple.png", "mango.png"} {
		require.NoError(t, s.Add(newRecord(tracker, name)))
	}

	var names []string
	for _, r := range s.Images() {
		names = append(names, r.Filename)
	}
	assert.Equal(t, []string{"apple.png", "mango.png", "zebra.png"}, names)
}

func TestSession_DeleteReleasesResourceOnce(t *testing.T) {
	tracker := resource.NewTracker()
	s := NewSession(10, tracker)

	r := newRecord(tracker, "a.png")
	require.NoError(t, s.Add(r))
	assert.Equal(t, 1, tracker.Outstanding())

	s.Delete(r.ID)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, tracker.Outstanding())
	assert.Nil(t, r.Data)

	s.Delete(r.ID) // already gone, no-op
	assert.Equal(t, 0, tracker.Outstanding())
}

func TestSession_CloseForceReleases(t *testing.T) {
	tracker := resource.NewTracker()
	s := NewSession(10, tracker)

	require.NoError(t, s.Add(newRecord(tracker, "a.png")))
	require.NoError(t, s.Add(newRecord(tracker, "b.png")))
	assert.Equal(t, 2, tracker.Outstanding())

	s.Close()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, tracker.Outstanding())
}

func TestRecord_HistoryAndSettingsDisciplines(t *testing.T) {
	tracker := resource.NewTracker()
	r := newRecord(tracker, "a.png")

	r.CropSettings = &CropSettings{Rect: geometry.Rect{X: 1, Y: 2, Width: 30, Height: 40}, AspectRatio: 0}
	r.AppendHistory(geometry.Rect{X: 1, Y: 2, Width: 30, Height: 40})
	r.AppendHistory(geometry.Rect{X: 5, Y: 6, Width: 20, Height: 20})

	// Clearing settings keeps the audit log.
	r.ClearSettings()
	assert.Nil(t, r.CropSettings)
	assert.Len(t, r.CropHistory, 2)
}

func TestNewRecord_UniqueIDs(t *testing.T) {
	tracker := resource.NewTracker()
	a := newRecord(tracker, "same.png")
	b := newRecord(tracker, "same.png")
	assert.NotEqual(t, a.ID, b.ID)
}
