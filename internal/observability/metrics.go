package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSaved labels a record that was persisted.
	OutcomeSaved = "saved"
	// OutcomeDuplicate labels an insert rejected for an existing roll number.
	OutcomeDuplicate = "duplicate"
	// OutcomeInvalid labels input rejected by validation.
	OutcomeInvalid = "invalid"
	// OutcomeError labels any other store failure.
	OutcomeError = "error"
)

var (
	registerOnce        sync.Once
	recordsSavedTotal   *prometheus.CounterVec
	reportCardsComputed prometheus.Counter
	finalScores         prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used by the report card service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		recordsSavedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reportcard_records_saved_total",
			Help: "Save attempts grouped by outcome.",
		}, []string{"outcome"})

		reportCardsComputed = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reportcard_computed_total",
			Help: "Report cards computed from validated marks.",
		})

		finalScores = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reportcard_final_score",
			Help:    "Distribution of computed final scores.",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		})

		prometheus.MustRegister(recordsSavedTotal, reportCardsComputed, finalScores)
	})
}

// RecordsSaved exposes the save outcome counter.
func RecordsSaved() *prometheus.CounterVec {
	RegisterMetrics()
	return recordsSavedTotal
}

// ReportCardsComputed exposes the computation counter.
func ReportCardsComputed() prometheus.Counter {
	RegisterMetrics()
	return reportCardsComputed
}

// FinalScores exposes the final score histogram.
func FinalScores() prometheus.Histogram {
	RegisterMetrics()
	return finalScores
}
