package orchestrators

import (
	"fmt"

	"loadbench/internal/shared/svcerrors"
)

const (
	codeInvalidGeneratorPlugin = "ORCH_1000"
	codeConflictLockHeld       = "ORCH_2000"
	codeInternalPhaseFailed    = "ORCH_9000"
)

// errInvalidGeneratorPlugin returns an error when configuration names a
// generator plugin nobody registered.
func errInvalidGeneratorPlugin(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidGeneratorPlugin, "unknown generator plugin", cause)
}

// ErrConflictLockHeld returns an error when another live run holds the lock.
func ErrConflictLockHeld(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeConflictLockHeld, "another run is in progress", cause)
}

// errInternalPhaseFailed returns an error when a run phase cannot complete.
func errInternalPhaseFailed(phase string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalPhaseFailed, fmt.Errorf("phaseFailed %s: %w", phase, cause))
}
