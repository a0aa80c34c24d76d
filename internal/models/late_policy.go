package models

import "fmt"

// LatePolicy decides what the windower does with a sample that arrives for
// an already-closed second.
type LatePolicy string

const (
	// LateDrop discards the sample with a warning. This is the default:
	// a closed bucket is never re-opened, so ordering and exactly-once
	// emission are preserved at the cost of the stray sample.
	LateDrop LatePolicy = "drop"
	// LateError fails the pipeline run instead of dropping.
	LateError LatePolicy = "error"
)

func NewLatePolicyFromString(s string) (LatePolicy, error) {
	switch LatePolicy(s) {
	case LateDrop:
		return LateDrop, nil
	case LateError:
		return LateError, nil
	default:
		return "", fmt.Errorf("invalid late policy: %q", s)
	}
}
