package intensity

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

// DefaultQuery is the metric exposed by grid intensity exporters, in
// kgCO2/MWh.
const DefaultQuery = "grid_carbon_intensity_kg_per_mwh"

// PrometheusSource fetches a day's hourly intensity forecast from a
// Prometheus server.
type PrometheusSource struct {
	client v1.API
	url    string
	query  string
	day    time.Time
}

// NewPrometheusSource creates a source that range-queries the given server
// for the 24 hours starting at midnight of day. An empty query selects
// DefaultQuery.
func NewPrometheusSource(url, query string, day time.Time) (*PrometheusSource, error) {
	client, err := api.NewClient(api.Config{
		Address: url,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus client: %w", err)
	}
	if query == "" {
		query = DefaultQuery
	}

	return &PrometheusSource{
		client: v1.NewAPI(client),
		url:    url,
		query:  query,
		day:    day,
	}, nil
}

// Fetch runs a range query with one sample per hour and builds the profile.
func (p *PrometheusSource) Fetch(ctx context.Context) (*Profile, error) {
	start := time.Date(p.day.Year(), p.day.Month(), p.day.Day(), 0, 0, 0, 0, p.day.Location())
	r := v1.Range{
		Start: start,
		End:   start.Add(23 * time.Hour),
		Step:  time.Hour,
	}

	result, warnings, err := p.client.QueryRange(ctx, p.query, r)
	if err != nil {
		return nil, fmt.Errorf("intensity query failed: %w", err)
	}
	if len(warnings) > 0 {
		fmt.Printf("[WARN] Prometheus: %v\n", warnings)
	}

	matrix, ok := result.(model.Matrix)
	if !ok || len(matrix) == 0 {
		return nil, fmt.Errorf("no data for query: %s", p.query)
	}

	// A grid-level metric should be a single series.
	series := matrix[0]
	if len(series.Values) != Hours {
		return nil, fmt.Errorf("expected %d hourly samples, got %d", Hours, len(series.Values))
	}

	values := make([]float64, Hours)
	for i, sample := range series.Values {
		values[i] = float64(sample.Value)
	}
	return NewProfile(values)
}

// IsAvailable reports whether the server answers queries.
func (p *PrometheusSource) IsAvailable(ctx context.Context) bool {
	_, _, err := p.client.Query(ctx, "up", time.Now())
	return err == nil
}

func (p *PrometheusSource) Name() string {
	return "prometheus"
}
