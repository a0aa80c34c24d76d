package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"loadbench/internal/models"
	"loadbench/internal/shared/loggers"
)

// Windower groups the sample stream into one-second buckets and emits
// completed buckets in strictly ascending timestamp order, absorbing
// out-of-order batch delivery up to cacheSize-1 distinct seconds.
//
// The open-bucket cache never holds more than cacheSize buckets: inserting a
// sample for a new second at capacity first evicts the smallest-timestamp
// bucket downstream. Because eviction always takes the minimum and a closed
// second is never re-opened, emitted timestamps are strictly ascending and
// each is emitted at most once. Eviction is capacity-triggered, not
// time-triggered, so the windower needs no watermark clock.
//
// A sample for an already-closed second follows the late policy: drop with a
// warning (default) or fail the run. The same policy covers a sample smaller
// than every open second arriving at capacity: opening it would force a
// larger second out first and break the ordering guarantee.
type Windower struct {
	poller     *Poller
	cacheSize  int
	latePolicy models.LatePolicy
	logger     loggers.Logger

	open    map[int64]*models.Bucket
	order   []int64 // open timestamps, ascending
	pending []*models.Bucket
	closed  int64 // highest evicted timestamp
	evicted bool
	done    bool
}

func NewWindower(poller *Poller, cacheSize int, latePolicy models.LatePolicy, logger loggers.Logger) *Windower {
	return &Windower{
		poller:     poller,
		cacheSize:  cacheSize,
		latePolicy: latePolicy,
		logger:     logger,
		open:       make(map[int64]*models.Bucket, cacheSize),
		order:      make([]int64, 0, cacheSize),
	}
}

// Next returns the next completed bucket or ErrExhausted.
func (w *Windower) Next(ctx context.Context) (*models.Bucket, error) {
	for {
		if len(w.pending) > 0 {
			bucket := w.pending[0]
			w.pending = w.pending[1:]
			return bucket, nil
		}
		if w.done {
			return nil, ErrExhausted
		}

		batch, err := w.poller.Next(ctx)
		if errors.Is(err, ErrExhausted) {
			w.flush()
			w.done = true
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, sample := range batch.Samples {
			if err := w.insert(sample); err != nil {
				return nil, err
			}
		}
	}
}

func (w *Windower) insert(sample models.Sample) error {
	if bucket, ok := w.open[sample.Timestamp]; ok {
		bucket.Add(sample)
		return nil
	}

	if w.evicted && sample.Timestamp <= w.closed {
		return w.rejectLate(sample, w.closed)
	}

	// Opening this second at capacity would evict a larger one and break
	// ascending emission, so a sample below every open second is late too.
	if len(w.order) == w.cacheSize && sample.Timestamp < w.order[0] {
		return w.rejectLate(sample, w.order[0])
	}

	// Evict before inserting so the cache never exceeds capacity.
	if len(w.order) == w.cacheSize {
		w.evictOldest()
	}

	bucket := models.NewBucket(sample.Timestamp)
	bucket.Add(sample)
	w.open[sample.Timestamp] = bucket

	i := sort.Search(len(w.order), func(i int) bool { return w.order[i] > sample.Timestamp })
	w.order = append(w.order, 0)
	copy(w.order[i+1:], w.order[i:])
	w.order[i] = sample.Timestamp
	metricOpenBuckets.Set(float64(len(w.order)))
	return nil
}

// rejectLate applies the late policy to a sample that can no longer get a
// bucket ahead of the watermark.
func (w *Windower) rejectLate(sample models.Sample, watermark int64) error {
	if w.latePolicy == models.LateError {
		return fmt.Errorf("late sample for closed second %d (watermark %d, tag %q)",
			sample.Timestamp, watermark, sample.Tag)
	}
	w.logger.Warn().
		Str(loggers.FieldTag, sample.Tag).
		Int64(loggers.FieldTimestamp, sample.Timestamp).
		Int64(loggers.FieldWatermark, watermark).
		Msg("dropping late sample for closed bucket")
	metricLateSamplesDroppedTotal.WithLabelValues(sample.Tag).Inc()
	return nil
}

func (w *Windower) evictOldest() {
	ts := w.order[0]
	w.order = w.order[1:]
	bucket := w.open[ts]
	delete(w.open, ts)

	w.closed = ts
	w.evicted = true
	w.pending = append(w.pending, bucket)
	metricBucketsEvictedTotal.Inc()
	metricOpenBuckets.Set(float64(len(w.order)))
}

// flush evicts all remaining open buckets in ascending timestamp order.
func (w *Windower) flush() {
	for len(w.order) > 0 {
		w.evictOldest()
	}
}
