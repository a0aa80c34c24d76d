package aggregators

import "math"

// Quantile returns the p-th percentile (p in [0,100]) of values, which must
// be sorted ascending and non-empty.
//
// The nearest-rank method is used: the result is the element at rank
// ceil(p/100*n), 1-indexed, with p=0 mapping to the minimum. No
// interpolation happens, so the result is always an observed value, the
// computation is deterministic for a fixed multiset, and n == 1 is
// well-defined (every percentile is the single value).
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}
