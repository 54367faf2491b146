package reporter

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// GenerateText writes the allocation table and per-job carbon log as an
// aligned text report.
func GenerateText(report *Report, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Strategy: %s\n", report.Strategy)
	fmt.Fprintf(w, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintln(w, "HOUR\tENERGY (MWh)\tJOBS")
	for _, slot := range report.Slots {
		jobs := ""
		for i, share := range slot.Jobs {
			if i > 0 {
				jobs += ", "
			}
			jobs += fmt.Sprintf("job %s for %.3f hr(s)", share.JobID, share.Fraction)
		}
		fmt.Fprintf(w, "%02d\t%.6f\t%s\n", slot.Hour, slot.Energy, jobs)
	}

	fmt.Fprintln(w, "\nJOB\tEMBODIED\tOPERATIONAL\tTOTAL (kgCO2)")
	for _, rec := range report.Records {
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\n",
			rec.JobID, rec.EmbodiedCarbon, rec.OperationalCarbon, rec.TotalCarbon)
	}

	if len(report.Failures) > 0 {
		fmt.Fprintln(w, "\nREJECTED\tREASON")
		for _, f := range report.Failures {
			fmt.Fprintf(w, "%s\t%s\n", f.JobID, f.Reason)
		}
	}

	fmt.Fprintf(w, "\nAllocated: %d  Rejected: %d\n", report.JobsAllocated, report.JobsRejected)
	fmt.Fprintf(w, "Total carbon: %.6f kgCO2  Total energy: %.6f MWh\n",
		report.TotalCarbon, report.TotalEnergy)

	return w.Flush()
}
