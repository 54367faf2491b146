package reporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/greenops/carbon-scheduler/pkg/models"
)

func sampleReport() *Report {
	records := []models.AllocationRecord{
		{
			JobID:             "j1",
			EmbodiedCarbon:    0.05,
			OperationalCarbon: 0.12,
			TotalCarbon:       0.17,
			Slots:             []models.SlotUse{{Hour: 3, Fraction: 1.0}, {Hour: 4, Fraction: 0.5}},
		},
	}
	failures := []Failure{{JobID: "j2", Reason: "job infeasible: exceeds carbon budget"}}
	slots := make([]models.SlotSnapshot, 24)
	for h := range slots {
		slots[h] = models.SlotSnapshot{Hour: h}
	}
	slots[3].Energy = 0.0005
	slots[3].Jobs = []models.JobShare{{JobID: "j1", Fraction: 1.0}}
	slots[4].Energy = 0.00025
	slots[4].Jobs = []models.JobShare{{JobID: "j1", Fraction: 0.5}}

	return Build("dampened", records, failures, slots)
}

func TestBuildAggregates(t *testing.T) {
	r := sampleReport()

	if r.JobsAllocated != 1 || r.JobsRejected != 1 {
		t.Errorf("Expected 1 allocated and 1 rejected, got %d/%d", r.JobsAllocated, r.JobsRejected)
	}
	if r.TotalCarbon != 0.17 {
		t.Errorf("Expected total carbon 0.17, got %.4f", r.TotalCarbon)
	}
	if r.BusiestHour != 3 {
		t.Errorf("Expected busiest hour 3, got %d", r.BusiestHour)
	}
}

func TestGenerateText(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateText(sampleReport(), &buf); err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Strategy: dampened", "job j1 for 1.000 hr(s)", "REJECTED", "Total carbon"} {
		if !strings.Contains(out, want) {
			t.Errorf("Text report missing %q", want)
		}
	}
}

func TestGenerateCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateCSV(sampleReport(), &buf); err != nil {
		t.Fatalf("GenerateCSV failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Job ID", "j1", "3:1.000 4:0.500", "SLOT TABLE", "SUMMARY"} {
		if !strings.Contains(out, want) {
			t.Errorf("CSV report missing %q", want)
		}
	}
}
