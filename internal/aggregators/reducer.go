package aggregators

import (
	"fmt"
	"sort"

	"loadbench/internal/models"
	"loadbench/internal/shared/loggers"
)

//go:generate mockgen -source=reducer.go -destination=./mocks/reducer_mock.go -package=mocks
type BucketReducer interface {
	// Reduce converts one completed bucket into its aggregated record.
	// Re-reducing an identical bucket yields an identical record.
	Reduce(bucket *models.Bucket) *models.AggregatedRecord
}

type reducer struct {
	spec   *Spec
	logger loggers.Logger
}

func NewReducer(spec *Spec, logger loggers.Logger) BucketReducer {
	return &reducer{spec: spec, logger: logger}
}

// Reduce computes per-tag statistics for every tag in the bucket. A tag
// whose samples are missing a configured field is omitted from the record
// with a warning; the remaining tags are still emitted.
func (r *reducer) Reduce(bucket *models.Bucket) *models.AggregatedRecord {
	record := &models.AggregatedRecord{
		Timestamp: bucket.Timestamp,
		Tags:      make(map[string]models.TagStats, len(bucket.ByTag)),
	}

	for tag, samples := range bucket.ByTag {
		fields, err := r.reduceTag(samples)
		if err != nil {
			r.logger.Warn().
				Err(err).
				Str(loggers.FieldTag, tag).
				Int64(loggers.FieldTimestamp, bucket.Timestamp).
				Msg("omitting tag from aggregated record")
			metricTagsOmittedTotal.WithLabelValues(tag).Inc()
			continue
		}
		record.Tags[tag] = models.TagStats{
			SampleCount: int64(len(samples)),
			Fields:      fields,
		}
	}

	return record
}

func (r *reducer) reduceTag(samples []models.Sample) (map[string]models.FieldStats, error) {
	out := make(map[string]models.FieldStats, len(r.spec.Fields))

	for field, fnNames := range r.spec.Fields {
		values := make([]float64, 0, len(samples))
		for _, sample := range samples {
			v, ok := sample.Fields[field]
			if !ok {
				return nil, fmt.Errorf("sample missing configured field %q", field)
			}
			values = append(values, v)
		}
		sort.Float64s(values)

		in := Input{Sorted: values, Percentiles: r.spec.Percentiles}
		stats := make(models.FieldStats)
		for _, name := range fnNames {
			fn, ok := Lookup(name)
			if !ok {
				// Spec construction validates names; this is a programming error.
				return nil, fmt.Errorf("unknown aggregate function %q", name)
			}
			for stat, value := range fn(in) {
				stats[stat] = value
			}
		}
		out[field] = stats
	}

	return out, nil
}
