package aggregators

import (
	"fmt"
	"sort"

	"loadbench/internal/shared/configs"
)

// Spec is the declarative aggregation specification: for each raw sample
// field, the aggregate functions to apply, plus the global percentile set
// consumed by the "quantiles" function. A Spec is built once per run and
// never changes while the pipeline is running.
type Spec struct {
	Fields      map[string][]string
	Percentiles []float64
}

// NewSpecFromConfig validates the configured function names against the
// registry and returns the immutable spec.
func NewSpecFromConfig(cfg configs.AggregationConfig) (*Spec, error) {
	if len(cfg.Fields) == 0 {
		return nil, fmt.Errorf("aggregation spec has no fields")
	}

	// Copy so later config mutation cannot reach into a running pipeline.
	fields := make(map[string][]string, len(cfg.Fields))
	for field, names := range cfg.Fields {
		if len(names) == 0 {
			return nil, fmt.Errorf("field %q has no aggregate functions", field)
		}
		for _, name := range names {
			if _, ok := Lookup(name); !ok {
				return nil, fmt.Errorf("field %q: unknown aggregate function %q (known: %v)",
					field, name, Names())
			}
		}
		fields[field] = append([]string(nil), names...)
	}

	percentiles := append([]float64(nil), cfg.Percentiles...)
	sort.Float64s(percentiles)

	return &Spec{
		Fields:      fields,
		Percentiles: percentiles,
	}, nil
}
