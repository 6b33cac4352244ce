package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/framecut/framecut/internal/config"
	"github.com/framecut/framecut/internal/gallery"
	"github.com/framecut/framecut/internal/metrics"
	"github.com/framecut/framecut/internal/notice"
	"github.com/framecut/framecut/internal/validate"
)

// ErrBusy is returned by AdmitSync while another batch is in flight.
var ErrBusy = fmt.Errorf("an admission batch is already in progress")

// Pipeline runs admission batches against a session. Admission is debounced
// and non-overlapping: rapid triggers coalesce into one batch, and a batch
// arriving while one is in flight is dropped, not queued.
type Pipeline struct {
	session   *gallery.Session
	validator *validate.Validator
	channel   notice.Channel

	maxFileBytes int64
	minDimension int
	maxDimension int
	maxImages    int
	debounce     time.Duration
	flushDelay   time.Duration

	mu      sync.Mutex
	busy    bool
	timer   *time.Timer
	pending []File
}

// New creates a Pipeline over the session using the given limits.
func New(session *gallery.Session, validator *validate.Validator, channel notice.Channel,
	galleryCfg config.GalleryConfig, ingestCfg config.IngestConfig,
) *Pipeline {
	return &Pipeline{
		session:      session,
		validator:    validator,
		channel:      channel,
		maxFileBytes: galleryCfg.MaxFileBytes,
		minDimension: galleryCfg.MinDimension,
		maxDimension: galleryCfg.MaxDimension,
		maxImages:    galleryCfg.MaxImages,
		debounce:     ingestCfg.DebounceDelay,
		flushDelay:   ingestCfg.NoticeFlushDelay,
	}
}

// Admit schedules a batch after the debounce delay. A newer call before the
// timer fires cancels the older one and its files win. Calls arriving while
// a batch is in flight are dropped.
func (p *Pipeline) Admit(files []File) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.busy {
		slog.Debug("admission already in progress, dropping call", "files", len(files))
		return
	}

	p.pending = files
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, p.fire)
}

// AdmitSync runs a batch immediately, bypassing the debounce but not the
// busy flag, and publishes the notices without the flush delay. It returns
// the notices so callers can render them inline.
func (p *Pipeline) AdmitSync(ctx context.Context, files []File) ([]notice.Notice, error) {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return nil, ErrBusy
	}
	p.busy = true
	p.mu.Unlock()

	col := p.runBatch(ctx, files)

	p.mu.Lock()
	p.busy = false
	p.mu.Unlock()

	notices := col.Notices()
	if len(notices) > 0 {
		p.channel.Publish(notices)
	}
	return notices, nil
}

// Busy reports whether a batch is currently in flight.
func (p *Pipeline) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

func (p *Pipeline) fire() {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return
	}
	p.busy = true
	files := p.pending
	p.pending = nil
	p.mu.Unlock()

	col := p.runBatch(context.Background(), files)

	p.mu.Lock()
	p.busy = false
	p.mu.Unlock()

	if col.Empty() {
		return
	}
	// Notices are held back briefly so they arrive together after the batch
	// instead of interleaving with session growth.
	time.Sleep(p.flushDelay)
	p.channel.Publish(col.Notices())
}

// runBatch executes the admission stages in order. Each stage may exhaust
// the candidate set, short-circuiting to its terminal notice.
func (p *Pipeline) runBatch(ctx context.Context, files []File) *notice.Collector {
	col := &notice.Collector{}
	defer metrics.BatchesProcessed.Inc()

	if len(files) == 0 {
		return col
	}

	free := p.session.FreeSlots()
	if free == 0 {
		metrics.ImagesRejected.WithLabelValues("capacity").Add(float64(len(files)))
		col.Warn("Image limit reached",
			fmt.Sprintf("%d file(s) ignored: the session already holds %d images", len(files), p.maxImages))
		return col
	}

	kept := p.filterTypeSizeExtension(files, col)
	if len(kept) == 0 {
		return col
	}

	kept = p.filterDuplicates(kept, col)
	if len(kept) == 0 {
		return col
	}

	ignored := 0
	if len(kept) > free {
		ignored = len(kept) - free
		metrics.ImagesRejected.WithLabelValues("capacity").Add(float64(ignored))
		kept = kept[:free]
	}

	admitted := p.validateAndAdmit(ctx, kept, col)

	if ignored > 0 {
		col.Warn("Image limit reached",
			fmt.Sprintf("%d added, %d ignored due to the %d-image limit", admitted, ignored, p.maxImages))
	}
	return col
}

// filterTypeSizeExtension rejects files with unaccepted declared types,
// oversized files, and declared-type/extension disagreements. Size and
// mismatch rejections get per-file notices; type rejections are aggregated.
func (p *Pipeline) filterTypeSizeExtension(files []File, col *notice.Collector) []File {
	kept := make([]File, 0, len(files))
	typeRejected := 0

	for _, f := range files {
		switch {
		case !TypeAccepted(f.ContentType):
			typeRejected++
			metrics.ImagesRejected.WithLabelValues("type").Inc()
		case f.SizeBytes > p.maxFileBytes:
			metrics.ImagesRejected.WithLabelValues("size").Inc()
			col.Warn("File too large",
				fmt.Sprintf("%s is %.1f MiB; the limit is %d MiB",
					f.Name, float64(f.SizeBytes)/(1024*1024), p.maxFileBytes/(1024*1024)))
		case !ExtensionMatches(f.ContentType, f.Name):
			metrics.ImagesRejected.WithLabelValues("extension").Inc()
			col.Warn("Extension mismatch",
				fmt.Sprintf("%s does not match its declared type %s", f.Name, f.ContentType))
		default:
			kept = append(kept, f)
		}
	}

	if typeRejected > 0 {
		col.Warn("Invalid file type",
			fmt.Sprintf("%d file(s) are not supported images (jpeg, png, gif, webp)", typeRejected))
	}
	return kept
}

// filterDuplicates drops candidates whose filename already exists in the
// session or earlier in the same batch.
func (p *Pipeline) filterDuplicates(files []File, col *notice.Collector) []File {
	kept := make([]File, 0, len(files))
	seen := make(map[string]bool, len(files))
	duplicates := 0

	for _, f := range files {
		if seen[f.Name] || p.session.HasFilename(f.Name) {
			duplicates++
			metrics.ImagesRejected.WithLabelValues("duplicate").Inc()
			continue
		}
		seen[f.Name] = true
		kept = append(kept, f)
	}

	if duplicates > 0 {
		col.Warn("Duplicate files", fmt.Sprintf("%d file(s) were already loaded", duplicates))
	}
	return kept
}

// validateAndAdmit validates candidates sequentially in input order and
// appends each accepted one to the session immediately, so the gallery grows
// incrementally and deterministically.
func (p *Pipeline) validateAndAdmit(ctx context.Context, files []File, col *notice.Collector) int {
	admitted := 0
	badDimensions := 0
	corrupt := 0

	for _, f := range files {
		res := p.validator.Validate(ctx, f.Name, f.Data)
		if !res.Valid {
			if res.Reason == validate.ReasonCorrupt {
				corrupt++
				metrics.ImagesRejected.WithLabelValues("corrupt").Inc()
			} else {
				badDimensions++
				metrics.ImagesRejected.WithLabelValues("dimensions").Inc()
			}
			continue
		}

		rec := gallery.NewRecord(p.session.Tracker(), f.Name, f.ContentType, f.Data,
			res.Info.Width, res.Info.Height, res.Info.Format)
		if err := p.session.Add(rec); err != nil {
			slog.Warn("session refused a validated image", "file", f.Name, "error", err)
			continue
		}
		admitted++
		metrics.ImagesAdmitted.Inc()
	}

	if badDimensions > 0 {
		col.Warn("Invalid image dimensions",
			fmt.Sprintf("%d image(s) are outside the %d-%d pixel range",
				badDimensions, p.minDimension, p.maxDimension))
	}
	if corrupt > 0 {
		col.Error("Unreadable images",
			fmt.Sprintf("%d file(s) could not be decoded and were skipped", corrupt))
	}
	return admitted
}
