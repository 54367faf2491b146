package intensity

import (
	"fmt"
	"math"
)

// Hours is the number of slots in the daily cycle.
const Hours = 24

// Profile is an immutable forecast of grid carbon intensity in kgCO2/MWh,
// one reading per hour of day.
type Profile struct {
	values [Hours]float64
}

// NewProfile validates and copies the given readings. The slice must hold
// exactly one finite, non-negative value per hour 0-23.
func NewProfile(values []float64) (*Profile, error) {
	if len(values) != Hours {
		return nil, fmt.Errorf("intensity profile must have exactly %d entries, got %d", Hours, len(values))
	}
	var p Profile
	for hour, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("intensity at hour %d is not finite", hour)
		}
		if v < 0 {
			return nil, fmt.Errorf("intensity at hour %d is negative: %.2f", hour, v)
		}
		p.values[hour] = v
	}
	return &p, nil
}

// At returns the intensity for the given hour of day.
func (p *Profile) At(hour int) float64 {
	return p.values[hour]
}

// Values returns a copy of all 24 readings indexed by hour.
func (p *Profile) Values() [Hours]float64 {
	return p.values
}

// Min returns the hour with the lowest intensity, lowest hour first on ties.
func (p *Profile) Min() (hour int, value float64) {
	value = p.values[0]
	for h := 1; h < Hours; h++ {
		if p.values[h] < value {
			hour, value = h, p.values[h]
		}
	}
	return hour, value
}
