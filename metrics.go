package trustgraph

import (
	"sync/atomic"
	"time"

	"github.com/paymolabs/trustgraph/model"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordEvaluate is called after each live payment evaluation.
	// direct reports that the degree came from the direct-connection
	// shortcut rather than a search.
	RecordEvaluate(duration time.Duration, degree model.Degree, direct bool)

	// RecordBulkLoad is called after each historic bulk load. pairs is the
	// number of pairs consumed, inserted the number of new edges.
	RecordBulkLoad(pairs, inserted int, duration time.Duration)

	// RecordSearch is called after each degree-of-separation search.
	// expanded is the number of nodes visited before termination.
	RecordSearch(expanded int, duration time.Duration)

	// RecordExport is called after each edge export.
	RecordExport(edges int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEvaluate(time.Duration, model.Degree, bool) {}
func (NoopMetricsCollector) RecordBulkLoad(int, int, time.Duration)           {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration)                  {}
func (NoopMetricsCollector) RecordExport(int, time.Duration)                  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EvaluateCount      atomic.Int64
	EvaluateDirect     atomic.Int64
	EvaluateUnreached  atomic.Int64
	EvaluateTotalNanos atomic.Int64
	BulkLoadCount      atomic.Int64
	BulkLoadPairs      atomic.Int64
	BulkLoadInserted   atomic.Int64
	SearchCount        atomic.Int64
	SearchExpanded     atomic.Int64
	SearchTotalNanos   atomic.Int64
	ExportCount        atomic.Int64
	ExportEdges        atomic.Int64
}

// RecordEvaluate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEvaluate(duration time.Duration, degree model.Degree, direct bool) {
	b.EvaluateCount.Add(1)
	b.EvaluateTotalNanos.Add(duration.Nanoseconds())
	if direct {
		b.EvaluateDirect.Add(1)
	}
	if !degree.Reachable() {
		b.EvaluateUnreached.Add(1)
	}
}

// RecordBulkLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBulkLoad(pairs, inserted int, duration time.Duration) {
	b.BulkLoadCount.Add(1)
	b.BulkLoadPairs.Add(int64(pairs))
	b.BulkLoadInserted.Add(int64(inserted))
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(expanded int, duration time.Duration) {
	b.SearchCount.Add(1)
	b.SearchExpanded.Add(int64(expanded))
	b.SearchTotalNanos.Add(duration.Nanoseconds())
}

// RecordExport implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExport(edges int, duration time.Duration) {
	b.ExportCount.Add(1)
	b.ExportEdges.Add(int64(edges))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EvaluateCount:     b.EvaluateCount.Load(),
		EvaluateDirect:    b.EvaluateDirect.Load(),
		EvaluateUnreached: b.EvaluateUnreached.Load(),
		EvaluateAvgNanos:  avg(b.EvaluateTotalNanos.Load(), b.EvaluateCount.Load()),
		BulkLoadCount:     b.BulkLoadCount.Load(),
		BulkLoadPairs:     b.BulkLoadPairs.Load(),
		BulkLoadInserted:  b.BulkLoadInserted.Load(),
		SearchCount:       b.SearchCount.Load(),
		SearchExpanded:    b.SearchExpanded.Load(),
		SearchAvgNanos:    avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		ExportCount:       b.ExportCount.Load(),
		ExportEdges:       b.ExportEdges.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EvaluateCount     int64
	EvaluateDirect    int64
	EvaluateUnreached int64
	EvaluateAvgNanos  int64
	BulkLoadCount     int64
	BulkLoadPairs     int64
	BulkLoadInserted  int64
	SearchCount       int64
	SearchExpanded    int64
	SearchAvgNanos    int64
	ExportCount       int64
	ExportEdges       int64
}
