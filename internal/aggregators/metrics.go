package aggregators

import (
	"loadbench/internal/shared/metrics"
)

// metricTagsOmittedTotal counts tags dropped from an aggregated record
// because their samples were missing a configured field. The rest of the
// record is still emitted; a nonzero rate usually means the aggregation
// spec names a field the generator does not produce.
var metricTagsOmittedTotal = metrics.NewCounterVec(
	metrics.CounterOpts{
		Namespace: metrics.Namespace,
		Subsystem: metrics.SubAggregation,
		Name:      "tags_omitted_total",
	},
	[]string{"tag"},
)
