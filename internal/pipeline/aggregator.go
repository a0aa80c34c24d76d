package pipeline

import (
	"context"

	"loadbench/internal/aggregators"
	"loadbench/internal/models"
)

// Aggregator reduces each completed bucket into exactly one AggregatedRecord
// using the reducer built from the run's aggregation spec. Records inherit
// the windower's ordering guarantees.
type Aggregator struct {
	windower *Windower
	reducer  aggregators.BucketReducer
}

func NewAggregator(windower *Windower, reducer aggregators.BucketReducer) *Aggregator {
	return &Aggregator{windower: windower, reducer: reducer}
}

// Next returns the next aggregated record or ErrExhausted.
func (a *Aggregator) Next(ctx context.Context) (*models.AggregatedRecord, error) {
	bucket, err := a.windower.Next(ctx)
	if err != nil {
		return nil, err
	}
	return a.reducer.Reduce(bucket), nil
}
