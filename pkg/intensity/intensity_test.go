package intensity

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func flatValues(v float64) []float64 {
	values := make([]float64, Hours)
	for i := range values {
		values[i] = v
	}
	return values
}

func TestNewProfile(t *testing.T) {
	values := flatValues(400)
	values[3] = 100

	p, err := NewProfile(values)
	if err != nil {
		t.Fatalf("NewProfile failed: %v", err)
	}

	if p.At(3) != 100 {
		t.Errorf("Expected 100 at hour 3, got %.1f", p.At(3))
	}
	if p.At(0) != 400 {
		t.Errorf("Expected 400 at hour 0, got %.1f", p.At(0))
	}

	hour, value := p.Min()
	if hour != 3 || value != 100 {
		t.Errorf("Expected min (3, 100), got (%d, %.1f)", hour, value)
	}
}

func TestNewProfileRejectsWrongLength(t *testing.T) {
	for _, n := range []int{0, 23, 25} {
		if _, err := NewProfile(make([]float64, n)); err == nil {
			t.Errorf("Expected error for %d entries, got nil", n)
		}
	}
}

func TestNewProfileRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		value float64
	}{
		{"negative", -1},
		{"NaN", math.NaN()},
		{"infinite", math.Inf(1)},
	}

	for _, tc := range cases {
		values := flatValues(400)
		values[7] = tc.value
		if _, err := NewProfile(values); err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestProfileImmutable(t *testing.T) {
	input := flatValues(400)
	p, err := NewProfile(input)
	if err != nil {
		t.Fatalf("NewProfile failed: %v", err)
	}

	input[5] = 1
	if p.At(5) != 400 {
		t.Error("Mutating the input slice must not affect the profile")
	}

	copied := p.Values()
	copied[5] = 1
	if p.At(5) != 400 {
		t.Error("Mutating a Values() copy must not affect the profile")
	}
}

func writeForecastCSV(t *testing.T, rows []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forecast.csv")
	content := "Datetime,AvgCarbonIntensity\n"
	for _, row := range rows {
		content += row + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestFileSourceFetch(t *testing.T) {
	rows := make([]string, Hours)
	for h := 0; h < Hours; h++ {
		rows[h] = fmt.Sprintf("1/15/2022 %d:00,%d", h, 300+h)
	}
	path := writeForecastCSV(t, rows)

	p, err := NewFileSource(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if p.At(0) != 300 || p.At(23) != 323 {
		t.Errorf("Unexpected values: hour0=%.0f hour23=%.0f", p.At(0), p.At(23))
	}
}

func TestFileSourceAcceptsISOTimestamps(t *testing.T) {
	rows := make([]string, Hours)
	for h := 0; h < Hours; h++ {
		rows[h] = fmt.Sprintf("2022-07-10 %02d:00:00,250", h)
	}
	path := writeForecastCSV(t, rows)

	if _, err := NewFileSource(path).Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
}

func TestFileSourceRejectsIncompleteDay(t *testing.T) {
	rows := make([]string, Hours-1)
	for h := 0; h < Hours-1; h++ {
		rows[h] = fmt.Sprintf("1/15/2022 %d:00,300", h)
	}
	path := writeForecastCSV(t, rows)

	if _, err := NewFileSource(path).Fetch(context.Background()); err == nil {
		t.Fatal("Expected error for 23-row forecast, got nil")
	}
}

func TestFileSourceRejectsDuplicateHour(t *testing.T) {
	rows := make([]string, Hours)
	for h := 0; h < Hours; h++ {
		rows[h] = fmt.Sprintf("1/15/2022 %d:00,300", h)
	}
	rows[23] = "1/15/2022 0:00,300"
	path := writeForecastCSV(t, rows)

	if _, err := NewFileSource(path).Fetch(context.Background()); err == nil {
		t.Fatal("Expected error for duplicate hour, got nil")
	}
}
