package pipeline

import (
	"context"
	"errors"
	"time"

	"loadbench/internal/models"
	"loadbench/internal/shared/loggers"
)

// Poller adapts an irregular BatchSource into a steady pull stage: not-ready
// polls are absorbed by sleeping one poll interval, so downstream stages only
// ever see batches or exhaustion.
//
// Cancellation of ctx is treated as exhaustion at the next poll boundary, so
// the windower still performs its final flush and buffered buckets are
// emitted rather than discarded.
type Poller struct {
	source   BatchSource
	interval time.Duration
	logger   loggers.Logger
}

func NewPoller(source BatchSource, interval time.Duration, logger loggers.Logger) *Poller {
	return &Poller{source: source, interval: interval, logger: logger}
}

// Next returns the next batch or ErrExhausted. It never returns ErrNotReady.
func (p *Poller) Next(ctx context.Context) (*models.Batch, error) {
	for {
		if ctx.Err() != nil {
			return nil, ErrExhausted
		}

		batch, err := p.source.Poll(ctx)
		switch {
		case err == nil:
			metricBatchesPolledTotal.Inc()
			return batch, nil
		case errors.Is(err, ErrNotReady):
			metricPollsNotReadyTotal.Inc()
			p.logger.Debug().Msg("source not ready, waiting one poll interval")
			select {
			case <-ctx.Done():
				return nil, ErrExhausted
			case <-time.After(p.interval):
			}
		case errors.Is(err, ErrExhausted):
			return nil, ErrExhausted
		default:
			return nil, err
		}
	}
}
