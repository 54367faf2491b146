package reporter

import (
	"encoding/csv"
	"fmt"
	"io"
)

// GenerateCSV creates a CSV report
func GenerateCSV(report *Report, writer io.Writer) error {
	w := csv.NewWriter(writer)
	defer w.Flush()

	// Write header
	header := []string{
		"Job ID",
		"Embodied (kgCO2)",
		"Operational (kgCO2)",
		"Total (kgCO2)",
		"Slots",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range report.Records {
		slots := ""
		for i, use := range rec.Slots {
			if i > 0 {
				slots += " "
			}
			slots += fmt.Sprintf("%d:%.3f", use.Hour, use.Fraction)
		}
		row := []string{
			rec.JobID,
			fmt.Sprintf("%.6f", rec.EmbodiedCarbon),
			fmt.Sprintf("%.6f", rec.OperationalCarbon),
			fmt.Sprintf("%.6f", rec.TotalCarbon),
			slots,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	// Rejected jobs
	if len(report.Failures) > 0 {
		w.Write([]string{}) // Empty row
		w.Write([]string{"REJECTED"})
		w.Write([]string{"Job ID", "Reason"})
		for _, f := range report.Failures {
			w.Write([]string{f.JobID, f.Reason})
		}
	}

	// Per-hour allocation table
	w.Write([]string{}) // Empty row
	w.Write([]string{"SLOT TABLE"})
	w.Write([]string{"Hour", "Energy (MWh)", "Jobs"})
	for _, slot := range report.Slots {
		jobs := ""
		for i, share := range slot.Jobs {
			if i > 0 {
				jobs += " "
			}
			jobs += fmt.Sprintf("%s:%.3f", share.JobID, share.Fraction)
		}
		w.Write([]string{
			fmt.Sprintf("%d", slot.Hour),
			fmt.Sprintf("%.6f", slot.Energy),
			jobs,
		})
	}

	// Write summary rows
	w.Write([]string{}) // Empty row
	w.Write([]string{"SUMMARY"})
	w.Write([]string{"Strategy", report.Strategy})
	w.Write([]string{"Jobs Allocated", fmt.Sprintf("%d", report.JobsAllocated)})
	w.Write([]string{"Jobs Rejected", fmt.Sprintf("%d", report.JobsRejected)})
	w.Write([]string{"Total Carbon (kgCO2)", fmt.Sprintf("%.6f", report.TotalCarbon)})
	w.Write([]string{"Total Energy (MWh)", fmt.Sprintf("%.6f", report.TotalEnergy)})

	return nil
}
