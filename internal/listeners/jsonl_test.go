package listeners_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"loadbench/internal/listeners"
	"loadbench/internal/models"
	"loadbench/internal/shared/filestorages"
	"loadbench/internal/shared/loggers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) loggers.Logger {
	t.Helper()
	logger, err := loggers.New("error")
	require.NoError(t, err)
	return logger
}

func testRecord(ts int64, count int64) *models.AggregatedRecord {
	return &models.AggregatedRecord{
		Timestamp: ts,
		Tags: map[string]models.TagStats{
			"case": {
				SampleCount: count,
				Fields: map[string]models.FieldStats{
					"latency_us": {"mean": 42.5},
				},
			},
		},
	}
}

func TestJSONLListener_WritesOneLinePerRecord(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	storage, err := filestorages.NewFileStorage(dir)
	require.NoError(t, err)

	listener, err := listeners.NewJSONLListener(storage, "run-1")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, listener.OnRecord(ctx, testRecord(100, 3)))
	require.NoError(t, listener.OnRecord(ctx, testRecord(101, 5)))
	require.NoError(t, listener.Close())

	file, err := os.Open(filepath.Join(dir, "results", "run-1.jsonl"))
	require.NoError(t, err)
	defer file.Close()

	var records []models.AggregatedRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var record models.AggregatedRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		records = append(records, record)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, records, 2)
	assert.Equal(t, int64(100), records[0].Timestamp)
	assert.Equal(t, int64(3), records[0].Tags["case"].SampleCount)
	assert.Equal(t, 42.5, records[0].Tags["case"].Fields["latency_us"]["mean"])
	assert.Equal(t, int64(101), records[1].Timestamp)
}

func TestJSONLListener_Name(t *testing.T) {
	t.Parallel()

	storage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	listener, err := listeners.NewJSONLListener(storage, "run-2")
	require.NoError(t, err)
	defer listener.Close()

	assert.Equal(t, "jsonl", listener.Name())
}

func TestConsoleListener_NeverFails(t *testing.T) {
	t.Parallel()

	logger := testLogger(t)
	listener := listeners.NewConsoleListener(logger)

	assert.Equal(t, "console", listener.Name())
	assert.NoError(t, listener.OnRecord(context.Background(), testRecord(100, 1)))
	assert.NoError(t, listener.Close())
}
