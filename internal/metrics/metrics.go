// Package metrics exposes Prometheus instrumentation for the admission
// pipeline and the crop editor. Collectors register on the default registry;
// exposition is left to the embedding application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ImagesAdmitted counts images that passed every admission stage.
	ImagesAdmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "framecut_images_admitted_total",
			Help: "Total number of images admitted into the session",
		},
	)

	// ImagesRejected counts admission rejections by reason.
	ImagesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "framecut_images_rejected_total",
			Help: "Total number of files rejected during admission",
		},
		[]string{"reason"}, // capacity, type, size, extension, duplicate, dimensions, corrupt
	)

	// BatchesProcessed counts completed admission batches.
	BatchesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "framecut_batches_processed_total",
			Help: "Total number of admission batches run to completion",
		},
	)

	// CropsCommitted counts crops confirmed and exported.
	CropsCommitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "framecut_crops_committed_total",
			Help: "Total number of crops committed",
		},
	)

	// SaveFallbacks counts exports that fell back from the user-directed
	// saver to the plain directory writer.
	SaveFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "framecut_save_fallbacks_total",
			Help: "Total number of exports written through the fallback saver",
		},
	)

	// ValidationDuration observes per-file validation latency.
	ValidationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "framecut_validation_duration_seconds",
			Help:    "Per-file validation duration in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
	)
)
