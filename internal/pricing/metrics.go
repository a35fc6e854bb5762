package pricing

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestDuration tracks end-to-end pricing request time.
	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_request_duration_seconds",
		Help:    "Time taken to price an ingredient list",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	// candidateCount tracks candidates collected per ingredient.
	candidateCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_candidates_count",
		Help:    "Number of catalog candidates collected per ingredient",
		Buckets: []float64{1, 5, 10, 15, 20, 30},
	})

	// matchScore tracks the distribution of winning match scores.
	matchScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_match_score",
		Help:    "Match score of the selected product per ingredient",
		Buckets: []float64{0.1, 0.25, 0.5, 0.65, 0.8, 0.9, 1.0},
	})

	// unpricedItems tracks how many lines per request went unpriced.
	unpricedItems = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_unpriced_items_count",
		Help:    "Number of unpriced ingredients per request",
		Buckets: []float64{0, 1, 2, 5, 10, 20},
	})
)

// MetricsRecorder provides methods to record pricing metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordRequestDuration records the duration of a pricing request.
func (m *MetricsRecorder) RecordRequestDuration(duration time.Duration) {
	requestDuration.Observe(duration.Seconds())
}

// RecordCandidateCount records candidates collected for one ingredient.
func (m *MetricsRecorder) RecordCandidateCount(count int) {
	candidateCount.Observe(float64(count))
}

// RecordMatchScore records the winning match score for one ingredient.
func (m *MetricsRecorder) RecordMatchScore(score float64) {
	matchScore.Observe(score)
}

// RecordUnpricedItems records unpriced line count for a request.
func (m *MetricsRecorder) RecordUnpricedItems(count int) {
	unpricedItems.Observe(float64(count))
}
