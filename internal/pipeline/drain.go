package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"loadbench/internal/shared/loggers"
	"loadbench/internal/streams"
)

// Drain runs the composed Poller→Windower→Aggregator chain to exhaustion on
// its own goroutine and forwards every record onto the output queue, in
// production order. The queue decouples the pipeline's cadence from the
// consumers'.
//
// A clean end of stream closes the queue; a stage error or panic is captured
// and surfaced through the queue so consumers can tell failure apart from
// completion.
type Drain struct {
	aggregator *Aggregator
	queue      *streams.RecordQueue
	logger     loggers.Logger

	wg        sync.WaitGroup
	startOnce sync.Once
}

func NewDrain(aggregator *Aggregator, queue *streams.RecordQueue, logger loggers.Logger) *Drain {
	return &Drain{aggregator: aggregator, queue: queue, logger: logger}
}

// Start launches the pipeline goroutine. Cancelling ctx stops the poller at
// the next poll boundary; buffered buckets are still flushed and pushed.
func (d *Drain) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.run(ctx)
		}()
	})
}

// Wait blocks until the pipeline goroutine has finished.
func (d *Drain) Wait() {
	d.wg.Wait()
}

func (d *Drain) run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("pipeline panic recovered")

			panicErr, ok := r.(error)
			if !ok {
				panicErr = fmt.Errorf("%v", r)
			}
			d.queue.Fail(fmt.Errorf("pipeline panicked: %w", panicErr))
		}
	}()

	for {
		record, err := d.aggregator.Next(ctx)
		if errors.Is(err, ErrExhausted) {
			d.logger.Debug().Msg("pipeline exhausted, closing record queue")
			d.queue.Close()
			return
		}
		if err != nil {
			d.logger.Error().Err(err).Msg("pipeline failed")
			d.queue.Fail(err)
			return
		}

		// Push blocks while the queue is full: backpressure, not loss.
		if err := d.queue.Push(record); err != nil {
			d.logger.Error().Err(err).Msg("record queue rejected push")
			return
		}
		metricRecordsEmittedTotal.Inc()
	}
}
