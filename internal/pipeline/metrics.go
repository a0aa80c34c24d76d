package pipeline

import (
	"loadbench/internal/shared/metrics"
)

var (
	// metricBatchesPolledTotal counts batches successfully pulled from the source.
	metricBatchesPolledTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "batches_polled_total",
		},
	)

	// metricPollsNotReadyTotal counts polls that found the source not ready.
	metricPollsNotReadyTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "polls_not_ready_total",
		},
	)

	// metricBucketsEvictedTotal counts buckets handed downstream, including
	// the final flush.
	metricBucketsEvictedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "buckets_evicted_total",
		},
	)

	// metricOpenBuckets tracks the open-bucket cache occupancy. Bounded by
	// pipeline.cache_size.
	metricOpenBuckets = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "open_buckets",
		},
	)

	// metricLateSamplesDroppedTotal counts samples dropped because their
	// second was already closed. A nonzero rate means batch reordering
	// exceeded cache_size-1 seconds.
	metricLateSamplesDroppedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "late_samples_dropped_total",
		},
		[]string{"tag"},
	)

	// metricRecordsEmittedTotal counts aggregated records pushed onto the
	// output queue.
	metricRecordsEmittedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "records_emitted_total",
		},
	)
)
