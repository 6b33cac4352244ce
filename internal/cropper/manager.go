package cropper

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/framecut/framecut/internal/codec"
	"github.com/framecut/framecut/internal/config"
	"github.com/framecut/framecut/internal/export"
	"github.com/framecut/framecut/internal/gallery"
	"github.com/framecut/framecut/internal/geometry"
	"github.com/framecut/framecut/internal/metrics"
	"github.com/framecut/framecut/internal/notice"
)

// State names the manager's position in its lifecycle.
type State string

const (
	StateClosed     State = "closed"
	StateOpening    State = "opening"
	StateEditing    State = "editing"
	StateCommitting State = "committing"
	StateCancelling State = "cancelling"
)

// Field names one numeric entry field of the editor.
type Field string

const (
	FieldX      Field = "x"
	FieldY      Field = "y"
	FieldWidth  Field = "width"
	FieldHeight Field = "height"
)

// Manager drives the crop editor for one image at a time. It is
// single-threaded and event-driven, like the UI loop it serves.
type Manager struct {
	session   *gallery.Session
	global    *GlobalStore
	channel   notice.Channel
	saver     export.Saver
	factory   SurfaceFactory
	cropCfg   config.CropConfig
	exportCfg config.ExportConfig

	globalMemory bool
	saveOnCancel bool

	state   State
	record  *gallery.Record
	surface Surface
	active  gallery.CropSettings
	fields  map[Field]string
}

// NewManager creates a closed manager over the session.
func NewManager(session *gallery.Session, global *GlobalStore, channel notice.Channel,
	saver export.Saver, factory SurfaceFactory, cropCfg config.CropConfig, exportCfg config.ExportConfig,
) *Manager {
	return &Manager{
		session:      session,
		global:       global,
		channel:      channel,
		saver:        saver,
		factory:      factory,
		cropCfg:      cropCfg,
		exportCfg:    exportCfg,
		globalMemory: cropCfg.GlobalMemory,
		saveOnCancel: cropCfg.SaveOnCancel,
		state:        StateClosed,
		fields:       make(map[Field]string),
	}
}

// State returns the manager's current lifecycle state.
func (m *Manager) State() State {
	return m.state
}

// SetGlobalMemory switches the persistence policy. Neither store is cleared
// by switching; the inactive one keeps its values.
func (m *Manager) SetGlobalMemory(enabled bool) {
	m.globalMemory = enabled
}

// GlobalMemory reports whether the global persistence policy is active.
func (m *Manager) GlobalMemory() bool {
	return m.globalMemory
}

// SetSaveOnCancel controls whether cancelling persists the uncommitted
// rectangle.
func (m *Manager) SetSaveOnCancel(enabled bool) {
	m.saveOnCancel = enabled
}

// activeStore dispatches on the persistence policy: the image's own settings
// cell or the process-wide one.
func (m *Manager) activeStore() Store {
	if m.globalMemory {
		return m.global
	}
	return perImageStore{record: m.record}
}

// Open loads the image and enters editing. On any load failure the manager
// returns to closed and the failure surfaces as a notice.
func (m *Manager) Open(imageID string) error {
	if m.state != StateClosed {
		return fmt.Errorf("crop editor is already open (state %s)", m.state)
	}
	rec := m.session.Get(imageID)
	if rec == nil {
		return fmt.Errorf("no image with id %s", imageID)
	}

	m.state = StateOpening
	img, _, err := codec.FullDecode(rec.Data)
	if err != nil {
		m.state = StateClosed
		m.channel.Publish([]notice.Notice{{
			Title:       "Failed to open editor",
			Description: fmt.Sprintf("%s could not be loaded", rec.Filename),
			Severity:    notice.SeverityError,
		}})
		return fmt.Errorf("failed to load %s: %w", rec.Filename, err)
	}

	surface, err := m.factory(img, m)
	if err != nil {
		m.state = StateClosed
		m.channel.Publish([]notice.Notice{{
			Title:       "Failed to open editor",
			Description: fmt.Sprintf("crop surface could not be created for %s", rec.Filename),
			Severity:    notice.SeverityError,
		}})
		return fmt.Errorf("failed to create crop surface: %w", err)
	}

	m.record = rec
	m.surface = surface

	seed := m.seedSettings()
	if prev, ok := rec.Canvas.(CanvasData); ok {
		surface.SetCanvasData(prev)
	}
	surface.SetAspectRatio(seed.AspectRatio)
	surface.SetData(seed.Rect)

	m.active = gallery.CropSettings{Rect: surface.Data(), AspectRatio: seed.AspectRatio}
	m.state = StateEditing
	m.refreshFields()
	return nil
}

// seedSettings picks the initial rectangle: the active store's remembered
// settings, or a centered crop covering half of each extent.
func (m *Manager) seedSettings() gallery.CropSettings {
	seed := gallery.CropSettings{Rect: geometry.Round(
		0.25*float64(m.record.Width), 0.25*float64(m.record.Height),
		0.5*float64(m.record.Width), 0.5*float64(m.record.Height),
	)}
	if s := m.activeStore().Read(); s != nil {
		seed = *s
	}
	if seed.AspectRatio > 0 && seed.Rect.Width > 0 {
		seed.Rect.Height = int(math.Round(float64(seed.Rect.Width) / seed.AspectRatio))
	}
	seed.Rect = seed.Rect.ClampToBounds(m.record.Width, m.record.Height, m.cropCfg.MinSize)
	return seed
}

// SurfaceReady implements EventSink.
func (m *Manager) SurfaceReady() {
	slog.Debug("crop surface ready")
}

// CropChanged implements EventSink: every interaction event yields a
// rectangle; a dimension below the minimum is clamped up and the corrected
// rectangle is pushed back into the surface before it becomes the active
// settings.
func (m *Manager) CropChanged(rect geometry.Rect) {
	if m.state != StateEditing {
		return
	}
	clamped := rect.ClampSize(m.cropCfg.MinSize)
	if clamped != rect {
		m.surface.SetData(clamped)
		clamped = m.surface.Data()
	}
	m.active.Rect = clamped
	m.refreshFields()
}

// EditField records a keystroke-level edit of a numeric field. Only the
// local display value changes; nothing propagates to the surface.
func (m *Manager) EditField(f Field, value string) {
	if m.state != StateEditing {
		return
	}
	m.fields[f] = value
}

// DisplayField returns the field's current display-space value.
func (m *Manager) DisplayField(f Field) string {
	return m.fields[f]
}

// CommitField applies a field edit: the display value converts to image
// space, clamps against the opposite corner and the image bounds, pushes
// into the surface, and the surface's authoritative rectangle is read back
// for display. Unparsable input reverts to the surface's value.
func (m *Manager) CommitField(f Field) {
	if m.state != StateEditing {
		return
	}

	display, err := strconv.Atoi(strings.TrimSpace(m.fields[f]))
	if err != nil {
		m.refreshFields()
		return
	}

	cont := m.surface.ContainerData()
	rect := m.surface.Data()
	w, h := m.record.Width, m.record.Height

	switch f {
	case FieldX:
		v := geometry.ToActual(display, w, cont.Width)
		rect.X = clamp(v, 0, w-rect.Width)
	case FieldY:
		v := geometry.ToActual(display, h, cont.Height)
		rect.Y = clamp(v, 0, h-rect.Height)
	case FieldWidth:
		v := geometry.ToActual(display, w, cont.Width)
		rect.Width = clamp(v, m.cropCfg.MinSize, min(w-rect.X, m.cropCfg.MaxSize))
	case FieldHeight:
		v := geometry.ToActual(display, h, cont.Height)
		rect.Height = clamp(v, m.cropCfg.MinSize, min(h-rect.Y, m.cropCfg.MaxSize))
	}

	// An active aspect lock binds the opposite dimension to the edited one,
	// shrinking both when the recomputed edge would leave the image.
	if ratio := m.active.AspectRatio; ratio > 0 {
		switch f {
		case FieldWidth:
			rect.Height = int(math.Round(float64(rect.Width) / ratio))
			if rect.Y+rect.Height > h {
				rect.Height = h - rect.Y
				rect.Width = int(math.Round(float64(rect.Height) * ratio))
			}
		case FieldHeight:
			rect.Width = int(math.Round(float64(rect.Height) * ratio))
			if rect.X+rect.Width > w {
				rect.Width = w - rect.X
				rect.Height = int(math.Round(float64(rect.Width) / ratio))
			}
		}
	}

	m.surface.SetData(rect)
	m.active.Rect = m.surface.Data()
	m.refreshFields()
}

// SetAspect applies an aspect-ratio selection mid-edit: a real ratio
// recomputes height from the current width; clearing to free-form leaves the
// rectangle untouched. The result persists into the active store.
func (m *Manager) SetAspect(selector geometry.Selector) {
	if m.state != StateEditing {
		return
	}

	ratio := geometry.SelectorToRatio(selector, m.record.Width, m.record.Height)
	rect := m.surface.Data()
	if ratio > 0 {
		rect.Height = int(math.Round(float64(rect.Width) / ratio))
		if rect.Y+rect.Height > m.record.Height {
			rect.Height = m.record.Height - rect.Y
			rect.Width = int(math.Round(float64(rect.Height) * ratio))
		}
	}

	m.surface.SetData(rect)
	m.surface.SetAspectRatio(ratio)
	m.active = gallery.CropSettings{Rect: m.surface.Data(), AspectRatio: ratio}
	m.activeStore().Write(m.active)
	m.refreshFields()
}

// AspectSelector returns the selector matching the active ratio.
func (m *Manager) AspectSelector() geometry.Selector {
	if m.record == nil {
		return geometry.SelectorFree
	}
	return geometry.RatioToSelector(m.active.AspectRatio, m.record.Width, m.record.Height)
}

// Settings returns the active crop settings.
func (m *Manager) Settings() gallery.CropSettings {
	return m.active
}

// Commit extracts the crop region, saves the artifact, and records the crop.
// A user-cancelled save still counts as a confirmed crop; an unexpected save
// error persists the attempted settings but does not advance history or the
// cropped flag.
func (m *Manager) Commit() error {
	if m.state != StateEditing {
		return fmt.Errorf("cannot commit from state %s", m.state)
	}
	m.state = StateCommitting

	err := m.saveArtifact()
	if err != nil && !errors.Is(err, export.ErrSaveCancelled) {
		m.activeStore().Write(m.active)
		m.global.Write(m.active)
		m.channel.Publish([]notice.Notice{{
			Title:       "Save failed",
			Description: fmt.Sprintf("the cropped image for %s could not be saved", m.record.Filename),
			Severity:    notice.SeverityError,
		}})
		m.teardown()
		return err
	}

	m.record.AppendHistory(m.active.Rect)
	m.record.Cropped = true
	m.record.Canvas = m.surface.CanvasData()
	m.activeStore().Write(m.active)
	// The global store advances on every confirmed crop, even in per-image
	// mode, so switching to global memory later reflects the most recent one.
	m.global.Write(m.active)
	metrics.CropsCommitted.Inc()
	m.teardown()
	return nil
}

func (m *Manager) saveArtifact() error {
	img, err := m.surface.CroppedRegion()
	if err != nil {
		return fmt.Errorf("failed to extract crop region: %w", err)
	}
	blob, err := export.Encode(img, m.record.Format, m.exportCfg.JPEGQuality)
	if err != nil {
		return err
	}
	name := export.ArtifactName(m.exportCfg.NamePrefix, m.record.Filename)
	return m.saver.Save(name, blob)
}

// Cancel leaves editing without committing. With save-on-cancel the current
// rectangle persists to the active store; without it, per-image mode clears
// the image's remembered settings while global mode leaves the shared store
// alone.
func (m *Manager) Cancel() {
	if m.state != StateEditing {
		return
	}
	m.state = StateCancelling

	if m.saveOnCancel {
		m.activeStore().Write(m.active)
	} else if !m.globalMemory {
		m.record.ClearSettings()
	}
	m.teardown()
}

// teardown destroys the surface on every exit path from editing.
func (m *Manager) teardown() {
	if m.surface != nil {
		m.surface.Destroy()
	}
	m.surface = nil
	m.record = nil
	m.fields = make(map[Field]string)
	m.state = StateClosed
}

// refreshFields rewrites every display value from the surface's
// authoritative rectangle.
func (m *Manager) refreshFields() {
	cont := m.surface.ContainerData()
	r := m.surface.Data()
	m.fields[FieldX] = strconv.Itoa(geometry.ToDisplay(r.X, m.record.Width, cont.Width))
	m.fields[FieldY] = strconv.Itoa(geometry.ToDisplay(r.Y, m.record.Height, cont.Height))
	m.fields[FieldWidth] = strconv.Itoa(geometry.ToDisplay(r.Width, m.record.Width, cont.Width))
	m.fields[FieldHeight] = strconv.Itoa(geometry.ToDisplay(r.Height, m.record.Height, cont.Height))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
