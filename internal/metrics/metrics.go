// Package metrics exposes prometheus metrics of the progress service.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/at-ishikawa/learnpath/internal/progress"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnpath_operations_total",
		Help: "Total number of progress operations by operation and outcome",
	}, []string{"operation", "outcome"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "learnpath_operation_duration_seconds",
		Help:    "Latency of progress operations",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"operation"})

	completionCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnpath_completion_cache_total",
		Help: "Completion cache lookups by result (hit, miss)",
	}, []string{"result"})

	catalogReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnpath_catalog_reloads_total",
		Help: "Catalog reloads triggered by file changes, by outcome (success, failure)",
	}, []string{"outcome"})
)

// Outcome labels the result of an operation by its error kind.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, progress.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, progress.ErrNotEnrolled):
		return "not_enrolled"
	case errors.Is(err, progress.ErrNotFound):
		return "not_found"
	case errors.Is(err, progress.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

// ObserveOperation records one finished operation.
func ObserveOperation(operation string, err error, elapsed time.Duration) {
	operationsTotal.WithLabelValues(operation, Outcome(err)).Inc()
	operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordCompletionCacheLookup records whether a completion report was served from the cache.
func RecordCompletionCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	completionCacheTotal.WithLabelValues(result).Inc()
}

// RecordCatalogReload records the result of a catalog reload.
func RecordCatalogReload(err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	catalogReloadsTotal.WithLabelValues(outcome).Inc()
}

// Observer forwards Tracker events to the package metrics.
type Observer struct{}

func (Observer) ObserveOperation(operation string, err error, elapsed time.Duration) {
	ObserveOperation(operation, err, elapsed)
}

func (Observer) ObserveCompletionCache(hit bool) {
	RecordCompletionCacheLookup(hit)
}
