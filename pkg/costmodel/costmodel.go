// Package costmodel computes the carbon-relevant quantities of a job that do
// not depend on when it runs: energy drawn, energy draw rate, and the job's
// pro-rata share of the hardware's embodied carbon. Operational carbon is
// priced during slot placement by the engine.
package costmodel

import (
	"fmt"

	"github.com/greenops/carbon-scheduler/pkg/models"
)

// EnergyConsumed returns the total energy a job draws over its runtime, in
// MWh. It scales linearly with utilization and duration and is independent
// of grid intensity or time placement.
func EnergyConsumed(job models.Job, hw models.HardwareProfile) float64 {
	return job.Utilization * job.DurationHours *
		float64(hw.Cores) * hw.TDP * hw.TDPCoefficient / 1e6
}

// EnergyPerHour returns the job's energy draw rate in MWh per hour.
// Defined only for positive durations.
func EnergyPerHour(job models.Job, hw models.HardwareProfile) (float64, error) {
	if job.DurationHours <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %.3f hours", job.DurationHours)
	}
	return EnergyConsumed(job, hw) / job.DurationHours, nil
}

// EmbodiedCarbon returns the job's share of the hardware's manufacturing
// carbon in kgCO2, proportional to the fraction of the hardware's lifetime
// the job occupies.
func EmbodiedCarbon(job models.Job, hw models.HardwareProfile) float64 {
	return (job.DurationHours / hw.LifetimeHours) * hw.EmbodiedCarbon
}
