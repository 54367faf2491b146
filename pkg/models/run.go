package models

import "time"

// Run represents one completed scheduling run: a batch of submissions
// against a fresh allocation state.
type Run struct {
	ID         string
	Strategy   string
	DampeningK float64

	JobsSubmitted int
	JobsAllocated int
	JobsRejected  int

	TotalCarbon float64
	CreatedAt   time.Time
}
