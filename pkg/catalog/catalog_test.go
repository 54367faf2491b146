package catalog

import (
	"testing"

	"github.com/greenops/carbon-scheduler/pkg/models"
)

func TestNewDefault(t *testing.T) {
	c := NewDefault()

	p, err := c.Get("amd_epyc_7571")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if p.Cores != 32 {
		t.Errorf("Expected 32 cores, got %d", p.Cores)
	}
	if p.EmbodiedCarbon != 1610.40 {
		t.Errorf("Expected embodied carbon 1610.40, got %.2f", p.EmbodiedCarbon)
	}
}

func TestGetUnknownProfile(t *testing.T) {
	c := NewDefault()

	_, err := c.Get("quantum_cpu_9000")
	if err == nil {
		t.Fatal("Expected error for unknown profile, got nil")
	}
}

func TestNewRejectsInvalidProfiles(t *testing.T) {
	cases := []struct {
		name    string
		profile models.HardwareProfile
	}{
		{"zero cores", models.HardwareProfile{Name: "x", TDP: 100, TDPCoefficient: 0.3, LifetimeHours: 1000}},
		{"negative TDP", models.HardwareProfile{Name: "x", Cores: 4, TDP: -1, TDPCoefficient: 0.3, LifetimeHours: 1000}},
		{"coefficient above one", models.HardwareProfile{Name: "x", Cores: 4, TDP: 100, TDPCoefficient: 1.5, LifetimeHours: 1000}},
		{"zero lifetime", models.HardwareProfile{Name: "x", Cores: 4, TDP: 100, TDPCoefficient: 0.3}},
		{"empty name", models.HardwareProfile{Cores: 4, TDP: 100, TDPCoefficient: 0.3, LifetimeHours: 1000}},
	}

	for _, tc := range cases {
		if _, err := New([]models.HardwareProfile{tc.profile}); err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	p := models.HardwareProfile{Name: "dup", Cores: 4, TDP: 100, TDPCoefficient: 0.3, LifetimeHours: 1000}

	_, err := New([]models.HardwareProfile{p, p})
	if err == nil {
		t.Fatal("Expected duplicate error, got nil")
	}
}
