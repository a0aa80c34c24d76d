package models

// FieldStats maps an aggregate name ("count", "mean", "q95", ...) to its
// computed value for one raw field.
type FieldStats map[string]float64

// TagStats is the reduced view of one tag within one second.
type TagStats struct {
	SampleCount int64                 `json:"sampleCount"`
	Fields      map[string]FieldStats `json:"fields"`
}

// AggregatedRecord is the per-second output of the aggregation pipeline:
// one entry per tag that received at least one sample during that second.
// Records are immutable and emitted exactly once per populated timestamp,
// in strictly ascending timestamp order.
//
// Example JSON:
//
//	{
//	  "timestamp": 1766945025,
//	  "tags": {
//	    "GET /": {
//	      "sampleCount": 312,
//	      "fields": {
//	        "latency_us": {"count": 312, "mean": 1520.4, "q95": 2210, "max": 8417},
//	        "size_bytes": {"sum": 1892352}
//	      }
//	    }
//	  }
//	}
type AggregatedRecord struct {
	Timestamp int64               `json:"timestamp"`
	Tags      map[string]TagStats `json:"tags"`
}
