package pipeline_test

import (
	"context"
	"testing"
	"time"

	"loadbench/internal/models"
	"loadbench/internal/pipeline"
	"loadbench/internal/pipeline/mocks"
	"loadbench/internal/shared/loggers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPoller_AbsorbsNotReady(t *testing.T) {
	t.Parallel()

	logger, err := loggers.New("error")
	require.NoError(t, err)

	source := pipeline.NewSliceSource(
		nil,
		nil,
		batchOf("a", 1),
		nil,
		batchOf("a", 2),
	)
	poller := pipeline.NewPoller(source, time.Millisecond, logger)
	ctx := context.Background()

	first, err := poller.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, first.Timestamps())

	second, err := poller.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, second.Timestamps())

	_, err = poller.Next(ctx)
	assert.ErrorIs(t, err, pipeline.ErrExhausted)
}

func TestPoller_ExhaustedIsSticky(t *testing.T) {
	t.Parallel()

	logger, err := loggers.New("error")
	require.NoError(t, err)

	poller := pipeline.NewPoller(pipeline.NewSliceSource(), time.Millisecond, logger)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := poller.Next(ctx)
		assert.ErrorIs(t, err, pipeline.ErrExhausted)
	}
}

func TestPoller_CancelledContextMeansExhaustion(t *testing.T) {
	t.Parallel()

	logger, err := loggers.New("error")
	require.NoError(t, err)

	// Source that stays not-ready forever.
	source := pipeline.NewChannelSource(1)
	poller := pipeline.NewPoller(source, 10*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = poller.Next(ctx)
	assert.ErrorIs(t, err, pipeline.ErrExhausted)
}

func TestPoller_PropagatesSourceError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger, err := loggers.New("error")
	require.NoError(t, err)

	source := mocks.NewMockBatchSource(ctrl)
	source.EXPECT().Poll(gomock.Any()).Return(nil, assert.AnError)

	poller := pipeline.NewPoller(source, time.Millisecond, logger)
	_, err = poller.Next(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPoller_ReturnsBatchFromMockSource(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger, err := loggers.New("error")
	require.NoError(t, err)

	batch := &models.Batch{Samples: []models.Sample{{Tag: "a", Timestamp: 9}}}
	source := mocks.NewMockBatchSource(ctrl)
	gomock.InOrder(
		source.EXPECT().Poll(gomock.Any()).Return(nil, pipeline.ErrNotReady),
		source.EXPECT().Poll(gomock.Any()).Return(batch, nil),
	)

	poller := pipeline.NewPoller(source, time.Millisecond, logger)
	got, err := poller.Next(context.Background())
	require.NoError(t, err)
	assert.Same(t, batch, got)
}
