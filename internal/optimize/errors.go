// Package optimize revises a resume toward a job's requirements without
// ever inventing experience. Every revision is grounded in text the
// resume already contains: a missing skill gets surfaced only when a
// bullet's source span evidences it, and rewritten bullets keep the
// original bullet's provenance span.
package optimize

import "fmt"

// OptimizationError reports a run in which no candidate revision
// survived. A resume with nothing to improve is NOT an error; that case
// reports the no_improvement outcome instead.
type OptimizationError struct {
	Message string
	Cause   error
}

func (e *OptimizationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("optimization failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("optimization failed: %s", e.Message)
}

func (e *OptimizationError) Unwrap() error {
	return e.Cause
}
