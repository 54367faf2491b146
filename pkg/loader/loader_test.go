package loader

import (
	"path/filepath"
	"testing"

	"github.com/greenops/carbon-scheduler/pkg/generator"
)

func TestLoadJobsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	want := generator.Generate(generator.Options{Count: 8, Hardware: "amd_epyc_7571", Budget: 25, Seed: 3})

	if err := generator.WriteCSV(path, want); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	got, err := LoadJobsFromCSV(path)
	if err != nil {
		t.Fatalf("LoadJobsFromCSV failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d jobs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Job %d differs: %+v vs %+v", i, got[i], want[i])
		}
	}
}

func TestLoadJobsMissingFile(t *testing.T) {
	if _, err := LoadJobsFromCSV("does/not/exist.csv"); err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}
