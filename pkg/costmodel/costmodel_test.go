package costmodel

import (
	"math"
	"testing"

	"github.com/greenops/carbon-scheduler/pkg/models"
)

var testHW = models.HardwareProfile{
	Name:           "amd_epyc_7571",
	Cores:          32,
	TDP:            120,
	TDPCoefficient: 0.3,
	EmbodiedCarbon: 1610.40,
	LifetimeHours:  4 * 8760,
}

func TestEnergyConsumed(t *testing.T) {
	job := models.Job{
		ID:            "j1",
		Utilization:   0.32,
		DurationHours: 1.5,
	}

	got := EnergyConsumed(job, testHW)
	want := 0.32 * 1.5 * 32 * 120 * 0.3 / 1e6

	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected %.9f MWh, got %.9f", want, got)
	}
}

func TestEnergyConsumedScalesLinearly(t *testing.T) {
	base := models.Job{Utilization: 0.25, DurationHours: 1.0}
	double := models.Job{Utilization: 0.25, DurationHours: 2.0}

	e1 := EnergyConsumed(base, testHW)
	e2 := EnergyConsumed(double, testHW)

	if math.Abs(e2-2*e1) > 1e-12 {
		t.Errorf("Doubling duration should double energy: %.9f vs %.9f", e1, e2)
	}
}

func TestEnergyPerHour(t *testing.T) {
	job := models.Job{Utilization: 0.5, DurationHours: 2.5}

	rate, err := EnergyPerHour(job, testHW)
	if err != nil {
		t.Fatalf("EnergyPerHour failed: %v", err)
	}

	want := EnergyConsumed(job, testHW) / 2.5
	if math.Abs(rate-want) > 1e-12 {
		t.Errorf("Expected rate %.9f, got %.9f", want, rate)
	}
}

func TestEnergyPerHourRejectsNonPositiveDuration(t *testing.T) {
	for _, d := range []float64{0, -1.5} {
		job := models.Job{Utilization: 0.5, DurationHours: d}
		if _, err := EnergyPerHour(job, testHW); err == nil {
			t.Errorf("Expected error for duration %.1f, got nil", d)
		}
	}
}

func TestEmbodiedCarbon(t *testing.T) {
	job := models.Job{Utilization: 0.5, DurationHours: 8760}

	got := EmbodiedCarbon(job, testHW)
	// One year on hardware with a four year lifetime: a quarter of the total.
	want := 1610.40 / 4

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected %.4f kgCO2, got %.4f", want, got)
	}
}

func TestEmbodiedCarbonIndependentOfUtilization(t *testing.T) {
	low := models.Job{Utilization: 0.1, DurationHours: 3}
	high := models.Job{Utilization: 0.9, DurationHours: 3}

	if EmbodiedCarbon(low, testHW) != EmbodiedCarbon(high, testHW) {
		t.Error("Embodied carbon should depend only on duration, not utilization")
	}
}
