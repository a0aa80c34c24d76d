package listeners

import (
	"context"

	"loadbench/internal/models"
	"loadbench/internal/shared/loggers"
)

// consoleListener logs one line per tag per second: the live display during
// a run.
type consoleListener struct {
	logger loggers.Logger
}

func NewConsoleListener(logger loggers.Logger) ResultListener {
	return &consoleListener{logger: logger}
}

func (l *consoleListener) Name() string { return "console" }

func (l *consoleListener) OnRecord(_ context.Context, record *models.AggregatedRecord) error {
	for tag, stats := range record.Tags {
		event := l.logger.Info().
			Int64(loggers.FieldTimestamp, record.Timestamp).
			Str(loggers.FieldTag, tag).
			Int64("samples", stats.SampleCount)
		for field, fieldStats := range stats.Fields {
			event = event.Interface(field, fieldStats)
		}
		event.Msg("second summary")
	}
	return nil
}

func (l *consoleListener) Close() error { return nil }
