package models

import "time"

// Job represents a compute job submitted for carbon-aware placement.
// A job is immutable once submitted; the engine never mutates or retries it.
type Job struct {
	ID       string
	Hardware string

	// Utilization is the fraction of the server the job keeps busy, in (0,1].
	Utilization float64

	// DurationHours is the required runtime in hours; may be fractional.
	DurationHours float64

	// CarbonBudget is the hard ceiling on total carbon in kgCO2.
	// A submission that would exceed it is rejected without side effects.
	CarbonBudget float64

	SubmittedAt time.Time
}
