package models

// HardwareProfile represents a server hardware model and the constants
// needed to attribute energy and embodied carbon to jobs running on it.
type HardwareProfile struct {
	Name  string
	Cores int

	// TDP is the thermal design power per core in watts.
	TDP float64

	// TDPCoefficient scales TDP to expected draw, in (0,1].
	TDPCoefficient float64

	// EmbodiedCarbon is the manufacturing carbon in kgCO2eq, amortized
	// over LifetimeHours.
	EmbodiedCarbon float64
	LifetimeHours  float64
}
