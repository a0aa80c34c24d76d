package listeners

import (
	"context"

	"loadbench/internal/models"
)

// ResultListener receives every aggregated record produced by a run, in
// ascending timestamp order. Listeners are registered with the result
// dispatcher before the run starts; OnRecord is always called from the
// dispatcher's single goroutine, so implementations need no locking of
// their own.
//
//go:generate mockgen -source=listener.go -destination=./mocks/listener_mock.go -package=mocks
type ResultListener interface {
	// Name identifies the listener in logs and metrics.
	Name() string
	// OnRecord handles one record. An error is logged and counted but does
	// not stop the run or other listeners.
	OnRecord(ctx context.Context, record *models.AggregatedRecord) error
	// Close flushes and releases the listener after the stream ends.
	Close() error
}
