// Package engine implements the carbon-aware slot allocation engine: it
// packs a job's runtime into the cheapest hours of a 24-hour cycle, enforces
// the job's carbon budget, and keeps the committed allocation state that
// later submissions are priced against.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/greenops/carbon-scheduler/pkg/catalog"
	"github.com/greenops/carbon-scheduler/pkg/costmodel"
	"github.com/greenops/carbon-scheduler/pkg/intensity"
	"github.com/greenops/carbon-scheduler/pkg/models"
	"github.com/greenops/carbon-scheduler/pkg/scorer"
)

// Tolerance for deciding a duration is fully covered.
const fractionEpsilon = 1e-9

type slot struct {
	energy float64 // cumulative committed MWh, never decreases
	jobs   []models.JobShare
}

// Engine owns the 24 hourly slots and the log of successful allocations.
// Submissions against one Engine are serialized internally; scoring always
// observes a consistent snapshot and commits are atomic.
type Engine struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	profile  *intensity.Profile
	strategy scorer.Strategy

	slots   [intensity.Hours]slot
	records []models.AllocationRecord
}

// New creates an engine over a validated intensity profile with empty slots.
func New(cat *catalog.Catalog, profile *intensity.Profile, strategy scorer.Strategy) (*Engine, error) {
	if cat == nil {
		return nil, fmt.Errorf("hardware catalog is required")
	}
	if profile == nil {
		return nil, fmt.Errorf("intensity profile is required")
	}
	if strategy == nil {
		return nil, fmt.Errorf("scoring strategy is required")
	}
	return &Engine{
		catalog:  cat,
		profile:  profile,
		strategy: strategy,
	}, nil
}

type planEntry struct {
	hour     int
	score    float64
	fraction float64
}

// SubmitJob allocates the job's entire duration across the cheapest slots,
// or allocates nothing. On success it commits the plan and returns the
// allocation record; on failure no slot and no log entry is touched.
// Infeasibility is reported via ErrInfeasible, malformed input via
// ErrInvalidJob.
func (e *Engine) SubmitJob(job models.Job) (*models.AllocationRecord, error) {
	hw, err := e.validate(job)
	if err != nil {
		return nil, err
	}

	embodied := costmodel.EmbodiedCarbon(job, hw)
	rate, err := costmodel.EnergyPerHour(job, hw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Phase 1: plan against an immutable snapshot. Nothing is mutated until
	// the whole duration fits under budget.
	ranked := scorer.Rank(e.strategy, e.profile, e.committedEnergy())

	projected := embodied
	remaining := job.DurationHours
	plan := make([]planEntry, 0, len(ranked))

	for _, rs := range ranked {
		fraction := remaining
		if fraction > 1.0 {
			fraction = 1.0
		}
		projected += rate * fraction * rs.Score
		if projected > job.CarbonBudget {
			return nil, fmt.Errorf("%w: job %s exceeds carbon budget %.4f kgCO2 (needs %.4f)",
				ErrInfeasible, job.ID, job.CarbonBudget, projected)
		}
		plan = append(plan, planEntry{hour: rs.Hour, score: rs.Score, fraction: fraction})
		remaining -= fraction
		if remaining <= fractionEpsilon {
			remaining = 0
			break
		}
	}
	if remaining > 0 {
		// More runtime than the daily cycle can hold. Never commit a
		// partial plan.
		return nil, fmt.Errorf("%w: job %s needs %.2f hours but the cycle has only %d slot hours",
			ErrInfeasible, job.ID, job.DurationHours, intensity.Hours)
	}

	// Phase 2: atomic commit.
	record := &models.AllocationRecord{
		JobID:             job.ID,
		EmbodiedCarbon:    embodied,
		OperationalCarbon: projected - embodied,
		TotalCarbon:       projected,
		Slots:             make([]models.SlotUse, 0, len(plan)),
		CreatedAt:         time.Now(),
	}
	for _, p := range plan {
		e.slots[p.hour].energy += rate * p.fraction
		e.slots[p.hour].jobs = append(e.slots[p.hour].jobs, models.JobShare{
			JobID:    job.ID,
			Fraction: p.fraction,
		})
		record.Slots = append(record.Slots, models.SlotUse{Hour: p.hour, Fraction: p.fraction})
	}
	e.records = append(e.records, *record)

	return record, nil
}

func (e *Engine) validate(job models.Job) (models.HardwareProfile, error) {
	if job.DurationHours <= 0 {
		return models.HardwareProfile{}, fmt.Errorf("%w: duration must be positive, got %.3f hours", ErrInvalidJob, job.DurationHours)
	}
	if job.Utilization <= 0 || job.Utilization > 1 {
		return models.HardwareProfile{}, fmt.Errorf("%w: utilization must be in (0,1], got %.3f", ErrInvalidJob, job.Utilization)
	}
	if job.CarbonBudget <= 0 {
		return models.HardwareProfile{}, fmt.Errorf("%w: carbon budget must be positive, got %.3f", ErrInvalidJob, job.CarbonBudget)
	}
	hw, err := e.catalog.Get(job.Hardware)
	if err != nil {
		return models.HardwareProfile{}, fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	return hw, nil
}

// committedEnergy copies the per-hour committed energy. Callers must hold
// e.mu.
func (e *Engine) committedEnergy() [intensity.Hours]float64 {
	var committed [intensity.Hours]float64
	for h := range e.slots {
		committed[h] = e.slots[h].energy
	}
	return committed
}

// Snapshot returns a read-only copy of all 24 slots for display.
func (e *Engine) Snapshot() []models.SlotSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.SlotSnapshot, intensity.Hours)
	for h := range e.slots {
		jobs := make([]models.JobShare, len(e.slots[h].jobs))
		copy(jobs, e.slots[h].jobs)
		out[h] = models.SlotSnapshot{Hour: h, Energy: e.slots[h].energy, Jobs: jobs}
	}
	return out
}

// Records returns the allocation records of every successful submission, in
// submission order.
func (e *Engine) Records() []models.AllocationRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.AllocationRecord, len(e.records))
	copy(out, e.records)
	return out
}

// TotalCarbon returns the summed carbon cost of all committed jobs in kgCO2.
func (e *Engine) TotalCarbon() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0.0
	for _, r := range e.records {
		total += r.TotalCarbon
	}
	return total
}

// Strategy returns the name of the configured scoring strategy.
func (e *Engine) Strategy() string {
	return e.strategy.Name()
}
