package models

import "time"

// SlotUse records the fraction of one hourly slot assigned to a job.
type SlotUse struct {
	Hour     int
	Fraction float64
}

// AllocationRecord represents the outcome of one successful submission:
// the job's total carbon cost and the slots it was placed into.
type AllocationRecord struct {
	JobID string

	// EmbodiedCarbon and OperationalCarbon sum to TotalCarbon, in kgCO2.
	EmbodiedCarbon    float64
	OperationalCarbon float64
	TotalCarbon       float64

	Slots     []SlotUse
	CreatedAt time.Time
}

// JobShare is one job's claim on a slot, in fractional hours.
type JobShare struct {
	JobID    string
	Fraction float64
}

// SlotSnapshot is a read-only view of one hourly slot: cumulative
// committed energy in MWh and the jobs placed there, in commit order.
type SlotSnapshot struct {
	Hour   int
	Energy float64
	Jobs   []JobShare
}
