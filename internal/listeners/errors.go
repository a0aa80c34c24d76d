package listeners

import (
	"fmt"

	"loadbench/internal/shared/svcerrors"
)

const (
	codeInternalSinkWriteFailed = "SINK_9000"
)

// errSinkWriteFailed returns an error when a listener fails to persist or
// forward a record.
func errSinkWriteFailed(sink string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSinkWriteFailed, fmt.Errorf("sinkWriteFailed %s: %w", sink, cause))
}
