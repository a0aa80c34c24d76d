package pipeline

import (
	"context"
	"errors"

	"loadbench/internal/models"
)

var (
	// ErrNotReady is returned by a poll when the producer has nothing
	// buffered yet. It is a pacing signal, not an error condition.
	ErrNotReady = errors.New("source not ready")
	// ErrExhausted is the terminal signal of a source or stage. Once
	// returned, every subsequent call returns it again.
	ErrExhausted = errors.New("source exhausted")
)

// BatchSource is the pull boundary toward the load generator: each Poll
// returns the next batch, ErrNotReady when nothing has been produced since
// the previous poll, or ErrExhausted once the generator is done.
//
//go:generate mockgen -source=source.go -destination=./mocks/source_mock.go -package=mocks
type BatchSource interface {
	Poll(ctx context.Context) (*models.Batch, error)
}

// ChannelSource adapts a producer goroutine (a load generator) into a
// BatchSource. Offer blocks when the buffer is full; Poll never blocks.
type ChannelSource struct {
	ch chan *models.Batch
}

func NewChannelSource(buffer int) *ChannelSource {
	return &ChannelSource{ch: make(chan *models.Batch, buffer)}
}

// Offer hands a batch to the source, blocking while the buffer is full.
func (s *ChannelSource) Offer(ctx context.Context, batch *models.Batch) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case s.ch <- batch:
		return nil
	}
}

// Close marks the source exhausted once the buffer drains. The producer
// must not Offer after Close.
func (s *ChannelSource) Close() {
	close(s.ch)
}

func (s *ChannelSource) Poll(ctx context.Context) (*models.Batch, error) {
	select {
	case batch, ok := <-s.ch:
		if !ok {
			return nil, ErrExhausted
		}
		return batch, nil
	default:
		return nil, ErrNotReady
	}
}

// SliceSource replays a fixed batch sequence; nil entries act as not-ready
// markers, simulating a slow producer. Used by tests and dry runs.
type SliceSource struct {
	batches []*models.Batch
	next    int
}

func NewSliceSource(batches ...*models.Batch) *SliceSource {
	return &SliceSource{batches: batches}
}

func (s *SliceSource) Poll(_ context.Context) (*models.Batch, error) {
	if s.next >= len(s.batches) {
		return nil, ErrExhausted
	}
	batch := s.batches[s.next]
	s.next++
	if batch == nil {
		return nil, ErrNotReady
	}
	return batch, nil
}
