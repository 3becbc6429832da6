// Package shared holds the sentinel errors used across the learning core.
// Callers match them with errors.Is; packages wrap them with fmt.Errorf("%w").
package shared

import "errors"

var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an insert hit an existing row for the same key.
	ErrAlreadyExists = errors.New("already exists")

	// ErrDataUnavailable indicates an external store (catalog, mastery,
	// profile) was unreachable or empty. Callers recover with documented
	// defaults rather than failing plan generation.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrCycleDetected indicates an unresolved prerequisite cycle.
	ErrCycleDetected = errors.New("prerequisite cycle detected")

	// ErrInvalidState indicates a state-machine misuse, e.g. completing an
	// activity on an already-completed plan. Always surfaced, never swallowed.
	ErrInvalidState = errors.New("invalid state")

	// ErrVersionConflict indicates an optimistic version check failed during
	// a plan save. The operation can be retried after re-reading.
	ErrVersionConflict = errors.New("version conflict")
)

// IsRetryable reports whether the operation that produced err can be retried
// after re-reading current state.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrDataUnavailable)
}
