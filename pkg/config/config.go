package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	// Intensity source
	IntensityFile  string
	PrometheusURL  string
	IntensityQuery string

	// Scoring
	Strategy   string
	DampeningK float64

	// Storage
	StorageEnabled bool
	DatabaseURL    string

	// Metrics
	MetricsAddr string

	// Output
	OutputFormat string // text, csv
	Verbose      bool

	// Fetch timeout for remote intensity sources
	FetchTimeout time.Duration
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		IntensityFile:  getEnv("INTENSITY_FILE", "caiso-data/day_forecast_aci.csv"),
		PrometheusURL:  getEnv("PROMETHEUS_URL", ""),
		IntensityQuery: getEnv("INTENSITY_QUERY", ""),
		Strategy:       getEnv("SCORING_STRATEGY", "dampened"),
		DampeningK:     getEnvFloat("DAMPENING_K", 3.5e6),
		StorageEnabled: getEnvBool("STORAGE_ENABLED", false),
		DatabaseURL:    getEnv("DATABASE_URL", "host=localhost port=5432 user=carbonuser password=devpassword dbname=carbonsched sslmode=disable"),
		MetricsAddr:    getEnv("METRICS_ADDR", ""),
		OutputFormat:   "text",
		Verbose:        false,
		FetchTimeout:   30 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.IntensityFile == "" && c.PrometheusURL == "" {
		return fmt.Errorf("either INTENSITY_FILE or PROMETHEUS_URL must be set")
	}
	if c.Strategy == "" {
		return fmt.Errorf("scoring strategy must be set")
	}
	if c.DampeningK < 0 {
		return fmt.Errorf("dampening constant must be >= 0")
	}
	if c.StorageEnabled && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set when storage is enabled")
	}
	if c.FetchTimeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}
	return nil
}
