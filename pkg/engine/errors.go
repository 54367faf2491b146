package engine

import "errors"

var (
	// ErrInvalidJob marks a malformed submission: non-positive duration,
	// out-of-range utilization, non-positive budget, or unknown hardware.
	// Rejected before any scoring and never logged as an allocation outcome.
	ErrInvalidJob = errors.New("invalid job")

	// ErrInfeasible marks a well-formed job that cannot be fully allocated
	// within its carbon budget or within the 24 available slot hours. An
	// expected outcome, not an exceptional one; state is left untouched and
	// the caller may resubmit with different parameters.
	ErrInfeasible = errors.New("job infeasible")
)
