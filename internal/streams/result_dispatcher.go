package streams

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"loadbench/internal/listeners"
	"loadbench/internal/models"
	"loadbench/internal/shared/loggers"
	"loadbench/internal/shared/metrics"
	"loadbench/internal/shared/svcerrors"
)

//go:generate mockgen -source=result_dispatcher.go -destination=./mocks/result_dispatcher_mock.go -package=mocks
type ResultDispatcher interface {
	Start(ctx context.Context)
	Stop()
	// Err reports the pipeline failure surfaced through the queue, if any.
	Err() error
}

// resultDispatcher is the consumer side of the record queue: one goroutine
// pops records and fans each out to the registered listeners. Listener
// failures and panics are contained per record; the stream keeps flowing.
type resultDispatcher struct {
	queue     *RecordQueue
	listeners []listeners.ResultListener

	wg       sync.WaitGroup
	stopOnce sync.Once
	cancel   context.CancelFunc

	mu      sync.Mutex
	lastErr error

	logger loggers.Logger
}

func NewResultDispatcher(queue *RecordQueue, resultListeners []listeners.ResultListener, logger loggers.Logger) ResultDispatcher {
	return &resultDispatcher{
		queue:     queue,
		listeners: resultListeners,
		logger:    logger,
	}
}

// Start spawns the dispatch goroutine.
func (d *resultDispatcher) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(ctx)
	}()
}

// Stop interrupts dispatching and waits for the goroutine to finish. Safe to
// call after the stream already ended.
func (d *resultDispatcher) Stop() {
	d.stopOnce.Do(func() {
		if d.cancel != nil {
			d.cancel()
		}
	})
	d.wg.Wait()
}

func (d *resultDispatcher) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

func (d *resultDispatcher) run(ctx context.Context) {
	defer d.closeListeners()

	for {
		record, err := d.queue.Pop(ctx)
		if err != nil {
			switch {
			case errors.Is(err, ErrQueueClosed):
				d.logger.Debug().Msg("record stream ended")
			case errors.Is(err, context.Canceled):
				d.logger.Debug().Msg("dispatcher stopped before stream end")
				d.flushRemaining()
				// Stop can win the select against a failure the producer
				// already reported; the queue still knows about it.
				if qErr := d.queue.Err(); qErr != nil {
					d.logger.Error().Err(qErr).Msg("record stream failed")
					d.mu.Lock()
					d.lastErr = qErr
					d.mu.Unlock()
				}
			default:
				// Pipeline failure surfaced through the queue.
				d.logger.Error().Err(err).Msg("record stream failed")
				d.mu.Lock()
				d.lastErr = err
				d.mu.Unlock()
			}
			return
		}

		for _, listener := range d.listeners {
			d.dispatch(ctx, listener, record)
		}
	}
}

// flushRemaining delivers records still buffered at stop time without
// blocking for new ones, so stopping right after a clean close never drops
// the tail of the stream.
func (d *resultDispatcher) flushRemaining() {
	ctx := context.Background()
	for {
		select {
		case record, ok := <-d.queue.ch:
			if !ok {
				return
			}
			for _, listener := range d.listeners {
				d.dispatch(ctx, listener, record)
			}
		default:
			return
		}
	}
}

// dispatch delivers one record to one listener with panic containment,
// mirroring the queue workers' recovery discipline.
func (d *resultDispatcher) dispatch(ctx context.Context, listener listeners.ResultListener, record *models.AggregatedRecord) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().
				Str(loggers.FieldListener, listener.Name()).
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("listener panic recovered")

			panicErr, ok := r.(error)
			if !ok {
				panicErr = fmt.Errorf("%v", r)
			}
			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricRecordsDispatchedTotal.WithLabelValues(listener.Name(), svcErr.Code).Inc()
		}
	}()

	if err := listener.OnRecord(ctx, record); err != nil {
		svcErr, ok := svcerrors.AsServiceError(err)
		if !ok {
			svcErr = svcerrors.NewInternalErrorUndefined(err)
		}
		d.logger.Warn().
			Err(err).
			Str(loggers.FieldListener, listener.Name()).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Msg("listener rejected record")
		metricRecordsDispatchedTotal.WithLabelValues(listener.Name(), svcErr.Code).Inc()
		return
	}
	metricRecordsDispatchedTotal.WithLabelValues(listener.Name(), metrics.ValueNoError).Inc()
}

func (d *resultDispatcher) closeListeners() {
	for _, listener := range d.listeners {
		if err := listener.Close(); err != nil {
			d.logger.Warn().
				Err(err).
				Str(loggers.FieldListener, listener.Name()).
				Msg("listener close failed")
		}
	}
}
