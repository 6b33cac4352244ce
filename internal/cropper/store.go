package cropper

import (
	"sync"

	"github.com/framecut/framecut/internal/gallery"
)

// Store reads and writes crop settings for one persistence policy. The two
// policies never delete each other's state; switching back restores whatever
// the other mode last held.
type Store interface {
	Read() *gallery.CropSettings
	Write(settings gallery.CropSettings)
}

// GlobalStore is the single process-wide settings cell used when the
// persistence policy is global.
type GlobalStore struct {
	mu       sync.Mutex
	settings *gallery.CropSettings
}

// Read returns the stored settings, or nil when nothing was written yet.
func (g *GlobalStore) Read() *gallery.CropSettings {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.settings == nil {
		return nil
	}
	s := *g.settings
	return &s
}

// Write replaces the stored settings.
func (g *GlobalStore) Write(settings gallery.CropSettings) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.settings = &settings
}

// perImageStore reads and writes the settings cell on one image record.
type perImageStore struct {
	record *gallery.Record
}

func (p perImageStore) Read() *gallery.CropSettings {
	if p.record.CropSettings == nil {
		return nil
	}
	s := *p.record.CropSettings
	return &s
}

func (p perImageStore) Write(settings gallery.CropSettings) {
	p.record.CropSettings = &settings
}
