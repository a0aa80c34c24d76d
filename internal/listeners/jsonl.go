package listeners

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"loadbench/internal/models"
	"loadbench/internal/shared/filestorages"
)

// jsonlListener appends each aggregated record as one JSON line to a file
// in the run's artifact storage, so partial results survive an interrupted
// run.
type jsonlListener struct {
	key     string
	file    io.WriteCloser
	encoder *json.Encoder
}

// NewJSONLListener opens results/<runID>.jsonl for appending in storage.
func NewJSONLListener(storage filestorages.FileStorage, runID string) (ResultListener, error) {
	key := fmt.Sprintf("results/%s.jsonl", runID)
	file, err := storage.Append(key)
	if err != nil {
		return nil, fmt.Errorf("opening results file %q: %w", key, err)
	}
	return &jsonlListener{
		key:     key,
		file:    file,
		encoder: json.NewEncoder(file),
	}, nil
}

func (l *jsonlListener) Name() string { return "jsonl" }

func (l *jsonlListener) OnRecord(_ context.Context, record *models.AggregatedRecord) error {
	if err := l.encoder.Encode(record); err != nil {
		return errSinkWriteFailed(l.key, err)
	}
	return nil
}

func (l *jsonlListener) Close() error {
	return l.file.Close()
}
