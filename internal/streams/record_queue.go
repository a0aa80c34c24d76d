package streams

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"loadbench/internal/models"
)

// ErrQueueClosed is returned by Pop after the producer closed the queue
// cleanly and the buffer drained.
var ErrQueueClosed = errors.New("record queue closed")

// RecordQueue is the single synchronization point between the pipeline's
// drain goroutine and record consumers. Push blocks while the buffer is
// full (backpressure); Pop blocks while it is empty.
//
// The producer finishes the stream either with Close (clean end) or
// Fail(err): after the buffer drains, Pop returns ErrQueueClosed for the
// former and the pipeline error for the latter, so consumers can always
// tell a failed run from a completed one.
//
// Push, Close and Fail belong to a single producer goroutine; Pop may be
// called from any number of consumers.
type RecordQueue struct {
	ch chan *models.AggregatedRecord

	pushed        atomic.Int64
	lastTimestamp atomic.Int64

	mu     sync.Mutex
	failed error
	closed bool
}

func NewRecordQueue(depth int) *RecordQueue {
	return &RecordQueue{ch: make(chan *models.AggregatedRecord, depth)}
}

// Push enqueues a record, blocking while the queue is full.
func (q *RecordQueue) Push(record *models.AggregatedRecord) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.mu.Unlock()

	q.ch <- record
	q.pushed.Add(1)
	q.lastTimestamp.Store(record.Timestamp)
	metricRecordsQueuedTotal.Inc()
	return nil
}

// Pushed returns how many records entered the queue so far.
func (q *RecordQueue) Pushed() int64 {
	return q.pushed.Load()
}

// LastTimestamp returns the bucket timestamp of the most recent record, zero
// before the first push.
func (q *RecordQueue) LastTimestamp() int64 {
	return q.lastTimestamp.Load()
}

// Close ends the stream cleanly. Records still buffered remain poppable.
func (q *RecordQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}

// Fail ends the stream with a pipeline error that Pop will surface once the
// buffer drains.
func (q *RecordQueue) Fail(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.failed = err
	q.closed = true
	close(q.ch)
}

// Pop dequeues the next record, blocking until one is available, the stream
// ends, or ctx is cancelled.
func (q *RecordQueue) Pop(ctx context.Context) (*models.AggregatedRecord, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case record, ok := <-q.ch:
		if !ok {
			if err := q.Err(); err != nil {
				return nil, err
			}
			return nil, ErrQueueClosed
		}
		return record, nil
	}
}

// Err returns the failure the producer reported, if any.
func (q *RecordQueue) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.failed
}
