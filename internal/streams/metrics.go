package streams

import (
	"loadbench/internal/shared/metrics"
)

var (
	// metricRecordsQueuedTotal counts records accepted by the record queue.
	metricRecordsQueuedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "records_queued_total",
		},
	)

	// metricRecordsDispatchedTotal counts per-listener deliveries, labelled
	// with the error code when delivery failed.
	metricRecordsDispatchedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "records_dispatched_total",
		},
		[]string{"listener", metrics.FieldErrorCode},
	)
)
