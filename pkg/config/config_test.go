package config

import (
	"os"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	// Clear any existing env vars
	os.Unsetenv("SCORING_STRATEGY")
	os.Unsetenv("DAMPENING_K")
	os.Unsetenv("INTENSITY_FILE")

	cfg := NewConfig()

	// Verify defaults
	if cfg.Strategy != "dampened" {
		t.Errorf("Expected default strategy dampened, got %s", cfg.Strategy)
	}

	if cfg.DampeningK != 3.5e6 {
		t.Errorf("Expected default dampening 3.5e6, got %g", cfg.DampeningK)
	}

	if cfg.IntensityFile != "caiso-data/day_forecast_aci.csv" {
		t.Errorf("Expected default intensity file, got %s", cfg.IntensityFile)
	}

	if cfg.StorageEnabled {
		t.Error("Expected storage disabled by default")
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	// Set environment variables
	os.Setenv("SCORING_STRATEGY", "plain")
	os.Setenv("DAMPENING_K", "1e6")
	os.Setenv("PROMETHEUS_URL", "http://prometheus:9090")
	defer os.Unsetenv("SCORING_STRATEGY")
	defer os.Unsetenv("DAMPENING_K")
	defer os.Unsetenv("PROMETHEUS_URL")

	cfg := NewConfig()

	if cfg.Strategy != "plain" {
		t.Errorf("Expected strategy plain from env, got %s", cfg.Strategy)
	}

	if cfg.DampeningK != 1e6 {
		t.Errorf("Expected dampening 1e6 from env, got %g", cfg.DampeningK)
	}

	if cfg.PrometheusURL != "http://prometheus:9090" {
		t.Errorf("Expected custom Prometheus URL, got %s", cfg.PrometheusURL)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name          string
		setupConfig   func(*Config)
		expectError   bool
		errorContains string
	}{
		{
			name: "valid default config",
			setupConfig: func(c *Config) {
				// Use defaults
			},
			expectError: false,
		},
		{
			name: "no intensity source",
			setupConfig: func(c *Config) {
				c.IntensityFile = ""
				c.PrometheusURL = ""
			},
			expectError:   true,
			errorContains: "INTENSITY_FILE or PROMETHEUS_URL",
		},
		{
			name: "empty strategy",
			setupConfig: func(c *Config) {
				c.Strategy = ""
			},
			expectError:   true,
			errorContains: "strategy",
		},
		{
			name: "negative dampening",
			setupConfig: func(c *Config) {
				c.DampeningK = -1
			},
			expectError:   true,
			errorContains: "dampening",
		},
		{
			name: "valid edge case - zero dampening",
			setupConfig: func(c *Config) {
				c.DampeningK = 0
			},
			expectError: false,
		},
		{
			name: "prometheus only",
			setupConfig: func(c *Config) {
				c.IntensityFile = ""
				c.PrometheusURL = "http://localhost:9090"
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.setupConfig(cfg)

			err := cfg.Validate()

			if tt.expectError && err == nil {
				t.Errorf("Expected error but got none")
			}

			if !tt.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}

			if tt.expectError && err != nil && tt.errorContains != "" {
				if !contains(err.Error(), tt.errorContains) {
					t.Errorf("Expected error containing '%s', got '%s'",
						tt.errorContains, err.Error())
				}
			}
		})
	}
}

func TestInvalidEnvValues(t *testing.T) {
	// Test invalid float
	os.Setenv("DAMPENING_K", "invalid")
	defer os.Unsetenv("DAMPENING_K")

	cfg := NewConfig()

	// Should fall back to default
	if cfg.DampeningK != 3.5e6 {
		t.Errorf("Expected fallback to default 3.5e6, got %g", cfg.DampeningK)
	}
}

func TestStorageConfiguration(t *testing.T) {
	os.Setenv("STORAGE_ENABLED", "true")
	os.Setenv("DATABASE_URL", "postgres://test")
	defer os.Unsetenv("STORAGE_ENABLED")
	defer os.Unsetenv("DATABASE_URL")

	cfg := NewConfig()

	if !cfg.StorageEnabled {
		t.Error("Expected storage to be enabled")
	}

	if cfg.DatabaseURL != "postgres://test" {
		t.Errorf("Expected custom database URL, got %s", cfg.DatabaseURL)
	}
}

func TestStorageValidation(t *testing.T) {
	cfg := NewConfig()
	cfg.StorageEnabled = true
	cfg.DatabaseURL = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("Expected validation error when storage enabled but no database URL")
	}

	if !contains(err.Error(), "DATABASE_URL") {
		t.Errorf("Expected error about DATABASE_URL, got: %v", err)
	}
}

// Helper function
func contains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
