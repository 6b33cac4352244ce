// Package validate decides whether a single candidate file may enter the
// session: it must decode, its pixel dimensions must be within bounds, and
// its pixel data must survive an integrity probe.
package validate

import (
	"context"
	"log/slog"
	"time"

	"github.com/framecut/framecut/internal/codec"
	"github.com/framecut/framecut/internal/metrics"
	"github.com/framecut/framecut/internal/resource"
)

// Reason classifies why a file failed validation.
type Reason string

const (
	ReasonTooSmall Reason = "too_small"
	ReasonTooLarge Reason = "too_large"
	ReasonCorrupt  Reason = "corrupt"
)

// Result is the outcome of validating one file. Info is populated only when
// the file is valid.
type Result struct {
	Valid  bool
	Reason Reason
	Info   codec.Info
}

// Validator checks candidate files against decodability, dimension, and
// integrity constraints within a fixed timeout.
type Validator struct {
	decoder      codec.Decoder
	prober       codec.Prober
	timeout      time.Duration
	minDimension int
	maxDimension int
	tracker      *resource.Tracker
}

// New creates a Validator. The tracker receives the temporary probe resource
// for each validation so it is released exactly once on every path.
func New(decoder codec.Decoder, prober codec.Prober, timeout time.Duration,
	minDimension, maxDimension int, tracker *resource.Tracker,
) *Validator {
	return &Validator{
		decoder:      decoder,
		prober:       prober,
		timeout:      timeout,
		minDimension: minDimension,
		maxDimension: maxDimension,
		tracker:      tracker,
	}
}

// Validate runs the decode, dimension, and probe checks on one file. A check
// that does not finish within the validator's timeout counts as corrupt.
func (v *Validator) Validate(ctx context.Context, name string, data []byte) Result {
	start := time.Now()
	defer func() { metrics.ValidationDuration.Observe(time.Since(start).Seconds()) }()

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	// The goroutine takes its own copy of the slice header so releasing the
	// tracked reference on a timeout never touches what the probe is reading.
	scratch := data
	handle := v.tracker.Track("validate "+name, func() error {
		scratch = nil
		return nil
	})
	defer v.tracker.Release(handle)

	done := make(chan Result, 1)
	go func(buf []byte) {
		done <- v.run(buf)
	}(scratch)

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		slog.Warn("validation timed out, treating file as corrupt", "file", name, "timeout", v.timeout)
		return Result{Reason: ReasonCorrupt}
	}
}

func (v *Validator) run(data []byte) Result {
	info, err := v.decoder.Decode(data)
	if err != nil {
		return Result{Reason: ReasonCorrupt}
	}

	if info.Width < v.minDimension || info.Height < v.minDimension {
		return Result{Reason: ReasonTooSmall}
	}
	if info.Width > v.maxDimension || info.Height > v.maxDimension {
		return Result{Reason: ReasonTooLarge}
	}

	if err := v.prober.Sample(data); err != nil {
		return Result{Reason: ReasonCorrupt}
	}

	return Result{Valid: true, Info: info}
}
