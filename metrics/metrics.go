// Package metrics exposes Prometheus instrumentation for the form service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cheers_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cheers_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Form metrics
	viewsMounted = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cheers_views_mounted",
			Help: "Number of form views currently held in memory",
		},
	)

	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cheers_submissions_total",
			Help: "Total number of form submissions by outcome",
		},
		[]string{"outcome"},
	)

	captureDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cheers_capture_duration_seconds",
			Help:    "Time spent rasterizing and encoding a card",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	uploadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cheers_upload_duration_seconds",
			Help:    "Time spent posting a card to the upload endpoint",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"result"},
	)

	imageBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cheers_image_size_bytes",
			Help:    "Size of the encoded card data URI in bytes",
			Buckets: []float64{50000, 100000, 250000, 500000, 1000000, 2500000},
		},
	)
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, statusCode int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// SetViewsMounted reports the size of the view registry.
func SetViewsMounted(n int) {
	viewsMounted.Set(float64(n))
}

// RecordSubmission counts a finished submission attempt.
func RecordSubmission(outcome string) {
	submissionsTotal.WithLabelValues(outcome).Inc()
}

// RecordCapture records the rasterize+encode step.
func RecordCapture(d time.Duration, size int) {
	captureDuration.Observe(d.Seconds())
	imageBytes.Observe(float64(size))
}

// RecordUpload records one upload call.
func RecordUpload(d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	uploadDuration.WithLabelValues(result).Observe(d.Seconds())
}
