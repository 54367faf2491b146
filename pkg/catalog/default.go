package catalog

import "github.com/greenops/carbon-scheduler/pkg/models"

// Assumes 4 years of service at full-time use.
const defaultLifetimeHours = 4 * 8760

// DefaultProfiles returns the built-in hardware profiles. Embodied carbon
// figures follow published manufacturer LCA estimates; TDP coefficients
// approximate average draw relative to rated TDP.
func DefaultProfiles() []models.HardwareProfile {
	return []models.HardwareProfile{
		{
			Name:           "amd_epyc_7571",
			Cores:          32,
			TDP:            120,
			TDPCoefficient: 0.3,
			EmbodiedCarbon: 1610.40,
			LifetimeHours:  defaultLifetimeHours,
		},
		{
			Name:           "xeon_platinum_8124",
			Cores:          18,
			TDP:            105,
			TDPCoefficient: 0.3,
			EmbodiedCarbon: 1344.1,
			LifetimeHours:  defaultLifetimeHours,
		},
	}
}

// NewDefault builds a catalog from DefaultProfiles.
func NewDefault() *Catalog {
	c, err := New(DefaultProfiles())
	if err != nil {
		// Built-in profiles are compile-time constants.
		panic(err)
	}
	return c
}
