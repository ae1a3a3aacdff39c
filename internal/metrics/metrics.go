// Package metrics exposes Prometheus collectors for the voice-generation
// pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voicegen"

var (
	// generationsTotal counts generation attempts by outcome.
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Total number of voice message generation attempts",
		},
		[]string{"status"}, // status: success, validation_error, provider_error
	)

	// synthesisDuration is a histogram of end-to-end generation duration.
	synthesisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "synthesis_duration_seconds",
			Help:      "Histogram of voice synthesis duration in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider"},
	)

	// audioSizeBytes is a histogram of generated clip sizes.
	audioSizeBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "audio_size_bytes",
			Help:      "Histogram of generated audio size in bytes",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB .. 16MiB
		},
	)

	registry = prometheus.NewRegistry()
)

func init() {
	registry.MustRegister(generationsTotal, synthesisDuration, audioSizeBytes)
}

// Handler serves the /metrics endpoint for this package's registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// GenerationSucceeded records one successful generation.
func GenerationSucceeded(provider string, elapsed time.Duration, sizeBytes int) {
	generationsTotal.WithLabelValues("success").Inc()
	synthesisDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
	audioSizeBytes.Observe(float64(sizeBytes))
}

// GenerationFailed records one failed generation with its error class.
func GenerationFailed(status string) {
	generationsTotal.WithLabelValues(status).Inc()
}
