// Package loader reads job batches from CSV files, the inverse of
// generator.WriteCSV.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/greenops/carbon-scheduler/pkg/models"
)

// LoadJobsFromCSV parses a CSV of:
//
//	id,hardware,utilization,duration_hours,carbon_budget
//
// and returns the jobs in file order. Values are type-converted here; the
// engine validates their ranges at submission.
func LoadJobsFromCSV(path string) ([]models.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open jobs file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var jobs []models.Job
	row := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		row++
		if len(rec) < 5 {
			return nil, fmt.Errorf("row %d: expected 5 columns, got %d", row, len(rec))
		}

		util, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad utilization %q: %w", row, rec[2], err)
		}
		duration, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad duration %q: %w", row, rec[3], err)
		}
		budget, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad carbon budget %q: %w", row, rec[4], err)
		}

		jobs = append(jobs, models.Job{
			ID:            rec[0],
			Hardware:      rec[1],
			Utilization:   util,
			DurationHours: duration,
			CarbonBudget:  budget,
		})
	}
	return jobs, nil
}
