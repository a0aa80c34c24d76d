package models

import "time"

// Sample is a single request-level measurement produced by a load generator.
//
// Timestamp is whole seconds since epoch, derived by truncating the
// generator's higher-resolution clock; the windower groups samples by this
// value. Fields holds the named numeric measurements the aggregation spec
// refers to (latency, response size, status code, ...). The field set is
// driven by configuration, not hard-coded here.
//
// A Sample is never mutated after construction.
type Sample struct {
	Tag       string
	Timestamp int64
	Fields    map[string]float64
}

// NewSample builds a sample from a wall-clock time, truncating it to the
// one-second bucket width.
func NewSample(tag string, at time.Time, fields map[string]float64) Sample {
	return Sample{
		Tag:       tag,
		Timestamp: at.Unix(),
		Fields:    fields,
	}
}

// Batch is one delivery from a sample source. A batch may span several
// distinct timestamps, is not required to be internally sorted, and batches
// themselves may arrive out of relative timestamp order.
type Batch struct {
	Samples []Sample
}

// Timestamps returns the distinct second values present in the batch,
// in first-seen order.
func (b *Batch) Timestamps() []int64 {
	seen := make(map[int64]struct{}, len(b.Samples))
	var out []int64
	for _, s := range b.Samples {
		if _, ok := seen[s.Timestamp]; !ok {
			seen[s.Timestamp] = struct{}{}
			out = append(out, s.Timestamp)
		}
	}
	return out
}
