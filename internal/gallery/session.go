package gallery

import (
	"fmt"
	"sort"
	"sync"

	"github.com/framecut/framecut/internal/resource"
)

// ErrSessionFull is returned when an Add would exceed the session capacity.
var ErrSessionFull = fmt.Errorf("session is at capacity")

// Session is the bounded set of admitted images. Display order is by
// filename; insertion order carries no meaning.
type Session struct {
	mu        sync.Mutex
	maxImages int
	records   map[string]*Record
	tracker   *resource.Tracker
}

// NewSession creates an empty session with the given capacity. The tracker
// is the session-wide release-list for display resources.
func NewSession(maxImages int, tracker *resource.Tracker) *Session {
	return &Session{
		maxImages: maxImages,
		records:   make(map[string]*Record),
		tracker:   tracker,
	}
}

// Tracker returns the session's release-list.
func (s *Session) Tracker() *resource.Tracker {
	return s.tracker
}

// Len returns the number of admitted images.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// FreeSlots returns how many more images the session can admit.
func (s *Session) FreeSlots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	free := s.maxImages - len(s.records)
	if free < 0 {
		free = 0
	}
	return free
}

// HasFilename reports whether an admitted image already carries the name.
// Filenames are the deduplication key for admission.
func (s *Session) HasFilename(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Filename == name {
			return true
		}
	}
	return false
}

// Add admits a record, enforcing the capacity invariant.
func (s *Session) Add(r *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) >= s.maxImages {
		return ErrSessionFull
	}
	s.records[r.ID] = r
	return nil
}

// Get returns the record with the given id, or nil.
func (s *Session) Get(id string) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[id]
}

// ByFilename returns the record carrying the name, or nil.
func (s *Session) ByFilename(name string) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Filename == name {
			return r
		}
	}
	return nil
}

// Images returns the records ordered by filename for display.
func (s *Session) Images() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out
}

// Delete removes a record and releases its display resource.
func (s *Session) Delete(id string) {
	s.mu.Lock()
	r, ok := s.records[id]
	if ok {
		delete(s.records, id)
	}
	s.mu.Unlock()

	if ok {
		s.tracker.Release(r.display)
	}
}

// Close tears the session down, force-releasing every resource still in the
// release-list.
func (s *Session) Close() {
	s.mu.Lock()
	s.records = make(map[string]*Record)
	s.mu.Unlock()
	s.tracker.ReleaseAll()
}
