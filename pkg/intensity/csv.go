package intensity

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Timestamp layouts seen in CAISO intensity exports.
var csvTimeLayouts = []string{
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
}

// FileSource reads a day's forecast from a CSV file with columns
// Datetime,AvgCarbonIntensity and one row per hour.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by the given CSV file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch parses the file into a 24-hour profile. Every hour of day must be
// covered exactly once; rows beyond the first 24 are rejected.
func (s *FileSource) Fetch(ctx context.Context) (*Profile, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open intensity file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	dtCol, ciCol, err := headerColumns(header)
	if err != nil {
		return nil, err
	}

	values := make([]float64, Hours)
	seen := make([]bool, Hours)
	rows := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		rows++
		if rows > Hours {
			return nil, fmt.Errorf("intensity file has more than %d rows", Hours)
		}

		ts, err := parseTimestamp(rec[dtCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rows, err)
		}
		v, err := strconv.ParseFloat(rec[ciCol], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad intensity %q: %w", rows, rec[ciCol], err)
		}

		hour := ts.Hour()
		if seen[hour] {
			return nil, fmt.Errorf("duplicate reading for hour %d", hour)
		}
		seen[hour] = true
		values[hour] = v
	}

	for hour, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("missing reading for hour %d", hour)
		}
	}

	return NewProfile(values)
}

func (s *FileSource) Name() string {
	return "csv"
}

func headerColumns(header []string) (dtCol, ciCol int, err error) {
	dtCol, ciCol = -1, -1
	for i, name := range header {
		switch name {
		case "Datetime":
			dtCol = i
		case "AvgCarbonIntensity":
			ciCol = i
		}
	}
	if dtCol < 0 || ciCol < 0 {
		return 0, 0, fmt.Errorf("header must contain Datetime and AvgCarbonIntensity columns")
	}
	return dtCol, ciCol, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range csvTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
