// Package notice carries user-facing messages from batch operations to
// whatever presentation layer is attached (CLI output, GUI toasts, tests).
package notice

import (
	"log/slog"
	"sync"
)

// Severity classifies how a notice should be presented.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is a single user-facing message describing one outcome of a batch
// or action.
type Notice struct {
	Title       string
	Description string
	Severity    Severity
}

// Channel receives the ordered notices of one completed batch or action.
type Channel interface {
	Publish(notices []Notice)
}

// Collector accumulates notices for one batch in emission order.
// The zero value is ready to use.
type Collector struct {
	notices []Notice
}

// Add appends a notice to the batch.
func (c *Collector) Add(n Notice) {
	c.notices = append(c.notices, n)
}

// Warn appends a warning-severity notice.
func (c *Collector) Warn(title, description string) {
	c.Add(Notice{Title: title, Description: description, Severity: SeverityWarning})
}

// Error appends an error-severity notice.
func (c *Collector) Error(title, description string) {
	c.Add(Notice{Title: title, Description: description, Severity: SeverityError})
}

// Empty reports whether no notices were collected.
func (c *Collector) Empty() bool {
	return len(c.notices) == 0
}

// Notices returns the collected notices in the order they were added.
func (c *Collector) Notices() []Notice {
	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// LogChannel publishes notices through slog. It is the default channel when
// no presentation layer is attached.
type LogChannel struct{}

// Publish logs each notice at a level matching its severity.
func (LogChannel) Publish(notices []Notice) {
	for _, n := range notices {
		switch n.Severity {
		case SeverityError:
			slog.Error(n.Title, "detail", n.Description)
		default:
			slog.Warn(n.Title, "detail", n.Description)
		}
	}
}

// Recorder is a Channel that retains everything published to it.
type Recorder struct {
	mu      sync.Mutex
	batches [][]Notice
}

// Publish records one batch of notices.
func (r *Recorder) Publish(notices []Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch := make([]Notice, len(notices))
	copy(batch, notices)
	r.batches = append(r.batches, batch)
}

// Batches returns every published batch in publication order.
func (r *Recorder) Batches() [][]Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]Notice, len(r.batches))
	copy(out, r.batches)
	return out
}

// All returns every published notice flattened in publication order.
func (r *Recorder) All() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notice
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}
