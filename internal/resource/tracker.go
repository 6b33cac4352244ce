// Package resource tracks temporary display resources (decoded images, probe
// buffers, export blobs) so that every one of them is released exactly once,
// including on error paths and at session teardown.
package resource

import (
	"log/slog"
	"sync"
)

// Handle identifies one tracked resource.
type Handle uint64

// ReleaseFunc frees the underlying resource. It is called at most once.
type ReleaseFunc func() error

// Tracker is the single release-list for a session. A resource is removed
// from the list the moment it is released, so a second Release on the same
// handle is a no-op.
type Tracker struct {
	mu      sync.Mutex
	next    Handle
	entries map[Handle]trackedResource
}

type trackedResource struct {
	label   string
	release ReleaseFunc
}

// NewTracker creates an empty release-list.
func NewTracker() *Tracker {
	return &Tracker{entries: make(map[Handle]trackedResource)}
}

// Track registers a resource and returns its handle. The label is used only
// for logging when a forced release fails.
func (t *Tracker) Track(label string, release ReleaseFunc) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	h := t.next
	t.entries[h] = trackedResource{label: label, release: release}
	return h
}

// Release frees the resource behind the handle and removes it from the list.
// Releasing an unknown or already-released handle does nothing. Release
// failures are logged, never returned; callers have no recovery path.
func (t *Tracker) Release(h Handle) {
	t.mu.Lock()
	entry, ok := t.entries[h]
	if ok {
		delete(t.entries, h)
	}
	t.mu.Unlock()

	if !ok || entry.release == nil {
		return
	}
	if err := entry.release(); err != nil {
		slog.Warn("failed to release resource", "resource", entry.label, "error", err)
	}
}

// ReleaseAll force-releases everything still in the list, in unspecified
// order. Used at session teardown to prevent leaks from exception paths.
func (t *Tracker) ReleaseAll() {
	t.mu.Lock()
	entries := t.entries
	t.entries = make(map[Handle]trackedResource)
	t.mu.Unlock()

	for _, entry := range entries {
		if entry.release == nil {
			continue
		}
		if err := entry.release(); err != nil {
			slog.Warn("failed to release resource at teardown", "resource", entry.label, "error", err)
		}
	}
}

// Outstanding returns the number of resources not yet released.
func (t *Tracker) Outstanding() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
