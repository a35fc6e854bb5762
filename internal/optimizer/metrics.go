package optimizer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// optimizationDuration tracks the time taken to build shopping plans.
	optimizationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "optimizer_plan_duration_seconds",
		Help:    "Time taken to build a shopping plan",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	// planEfficiency tracks the primary-store efficiency of produced plans.
	planEfficiency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "optimizer_plan_efficiency_percent",
		Help:    "Share of ingredients assigned to the primary store",
		Buckets: []float64{25, 50, 60, 70, 80, 90, 100},
	})

	// storesUsed tracks how many stores plans spread across.
	storesUsed = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "optimizer_plan_stores_count",
		Help:    "Number of stores used by a shopping plan",
		Buckets: []float64{1, 2, 3, 4, 5},
	})
)

// MetricsRecorder provides methods to record optimizer metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordOptimizationDuration records the duration of a plan build.
func (m *MetricsRecorder) RecordOptimizationDuration(duration time.Duration) {
	optimizationDuration.Observe(duration.Seconds())
}

// RecordPlanEfficiency records the efficiency of a produced plan.
func (m *MetricsRecorder) RecordPlanEfficiency(percent int) {
	planEfficiency.Observe(float64(percent))
}

// RecordStoresUsed records the number of stores a plan uses.
func (m *MetricsRecorder) RecordStoresUsed(count int) {
	storesUsed.Observe(float64(count))
}
