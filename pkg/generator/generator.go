// Package generator produces synthetic job batches for demos and load
// testing. Randomness is driven by an explicit seed so a batch can be
// reproduced exactly.
package generator

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/greenops/carbon-scheduler/pkg/models"
)

// Options controls a generated batch.
type Options struct {
	Count    int
	Hardware string
	Budget   float64
	Seed     int64
}

// Generate returns Count jobs with utilization in [0.2, ~0.42) and duration
// in [0.5, 2.5) hours, the shape of a typical batch-compute day. Job IDs are
// fresh UUIDs; all other fields derive from the seed.
func Generate(opts Options) []models.Job {
	rng := rand.New(rand.NewSource(opts.Seed))

	jobs := make([]models.Job, opts.Count)
	for i := range jobs {
		jobs[i] = models.Job{
			ID:            uuid.NewString(),
			Hardware:      opts.Hardware,
			Utilization:   rng.Float64()/4.5 + 0.2,
			DurationHours: rng.Float64()*2 + 0.5,
			CarbonBudget:  opts.Budget,
		}
	}
	return jobs
}

// WriteCSV writes a job batch as {id,hardware,utilization,duration_hours,carbon_budget}.
func WriteCSV(path string, jobs []models.Job) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating dirs for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s): %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"id", "hardware", "utilization", "duration_hours", "carbon_budget"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, job := range jobs {
		row := []string{
			job.ID,
			job.Hardware,
			strconv.FormatFloat(job.Utilization, 'f', -1, 64),
			strconv.FormatFloat(job.DurationHours, 'f', -1, 64),
			strconv.FormatFloat(job.CarbonBudget, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row for job %s: %w", job.ID, err)
		}
	}
	return w.Error()
}
