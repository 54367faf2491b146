package reporter

import (
	"time"

	"github.com/greenops/carbon-scheduler/pkg/models"
)

// ReportFormat represents the output format
type ReportFormat string

const (
	FormatText ReportFormat = "text"
	FormatCSV  ReportFormat = "csv"
)

// Failure is a rejected submission and why it was rejected.
type Failure struct {
	JobID  string
	Reason string
}

// Report contains all data for rendering one scheduling run
type Report struct {
	Strategy    string
	GeneratedAt time.Time

	Records  []models.AllocationRecord
	Failures []Failure
	Slots    []models.SlotSnapshot

	TotalCarbon   float64
	TotalEnergy   float64
	JobsAllocated int
	JobsRejected  int
	BusiestHour   int
}

// Build assembles a report from a run's outcomes and final slot table.
func Build(strategy string, records []models.AllocationRecord, failures []Failure, slots []models.SlotSnapshot) *Report {
	report := &Report{
		Strategy:      strategy,
		GeneratedAt:   time.Now(),
		Records:       records,
		Failures:      failures,
		Slots:         slots,
		JobsAllocated: len(records),
		JobsRejected:  len(failures),
	}

	for _, rec := range records {
		report.TotalCarbon += rec.TotalCarbon
	}
	for _, slot := range slots {
		report.TotalEnergy += slot.Energy
		if slot.Energy > slots[report.BusiestHour].Energy {
			report.BusiestHour = slot.Hour
		}
	}

	return report
}
