package aggregators

import (
	"fmt"
	"math"
	"sort"

	"loadbench/internal/models"
)

// bucketWidthSeconds is the fixed time granularity of the pipeline.
const bucketWidthSeconds = 1.0

// Input is the per-field view an aggregate function reduces: the field's
// values across one tag's samples within one second, sorted ascending, plus
// the run's percentile set.
type Input struct {
	Sorted      []float64
	Percentiles []float64
}

// aggregateFunc reduces one field's values into one or more named stats.
// Implementations must be deterministic for a fixed input multiset and must
// tolerate a single-element input.
type aggregateFunc func(in Input) models.FieldStats

// registry maps aggregate function names to implementations. Functions are
// enumerated statically; configuration selects by name.
var registry = map[string]aggregateFunc{
	"count":     aggCount,
	"sum":       aggSum,
	"mean":      aggMean,
	"min":       aggMin,
	"max":       aggMax,
	"stddev":    aggStddev,
	"quantiles": aggQuantiles,
	"rps":       aggRPS,
}

// Lookup returns the aggregate function registered under name.
func Lookup(name string) (aggregateFunc, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Names returns all registered function names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func aggCount(in Input) models.FieldStats {
	return models.FieldStats{"count": float64(len(in.Sorted))}
}

func aggSum(in Input) models.FieldStats {
	return models.FieldStats{"sum": sum(in.Sorted)}
}

func aggMean(in Input) models.FieldStats {
	return models.FieldStats{"mean": sum(in.Sorted) / float64(len(in.Sorted))}
}

func aggMin(in Input) models.FieldStats {
	return models.FieldStats{"min": in.Sorted[0]}
}

func aggMax(in Input) models.FieldStats {
	return models.FieldStats{"max": in.Sorted[len(in.Sorted)-1]}
}

// aggStddev computes the population standard deviation. Zero for n == 1.
func aggStddev(in Input) models.FieldStats {
	mean := sum(in.Sorted) / float64(len(in.Sorted))
	var sq float64
	for _, v := range in.Sorted {
		d := v - mean
		sq += d * d
	}
	return models.FieldStats{"stddev": math.Sqrt(sq / float64(len(in.Sorted)))}
}

// aggQuantiles emits one stat per configured percentile, named q<p> with
// trailing zeros trimmed ("q50", "q99.9").
func aggQuantiles(in Input) models.FieldStats {
	stats := make(models.FieldStats, len(in.Percentiles))
	for _, p := range in.Percentiles {
		stats[quantileName(p)] = Quantile(in.Sorted, p)
	}
	return stats
}

// aggRPS is the derived per-second rate: sample count over the bucket width.
func aggRPS(in Input) models.FieldStats {
	return models.FieldStats{"rps": float64(len(in.Sorted)) / bucketWidthSeconds}
}

func quantileName(p float64) string {
	if p == math.Trunc(p) {
		return fmt.Sprintf("q%d", int64(p))
	}
	return fmt.Sprintf("q%g", p)
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
