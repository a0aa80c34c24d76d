package models

// Bucket accumulates every sample observed for a single second, grouped by
// tag. Buckets exist only while open inside the windower's cache and are
// owned exclusively by it; once evicted they are reduced to an
// AggregatedRecord and discarded.
type Bucket struct {
	Timestamp int64
	ByTag     map[string][]Sample
}

func NewBucket(timestamp int64) *Bucket {
	return &Bucket{
		Timestamp: timestamp,
		ByTag:     make(map[string][]Sample),
	}
}

// Add appends a sample to its tag group. The caller guarantees the sample's
// timestamp matches the bucket's.
func (b *Bucket) Add(s Sample) {
	b.ByTag[s.Tag] = append(b.ByTag[s.Tag], s)
}

// SampleCount returns the total number of samples across all tags.
func (b *Bucket) SampleCount() int {
	n := 0
	for _, samples := range b.ByTag {
		n += len(samples)
	}
	return n
}
