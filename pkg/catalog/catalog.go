package catalog

import (
	"fmt"

	"github.com/greenops/carbon-scheduler/pkg/models"
)

// Catalog is an immutable lookup of hardware profiles by name. It is built
// once from an explicit profile list and passed into the engine; there is no
// process-wide registry.
type Catalog struct {
	profiles map[string]models.HardwareProfile
}

// New builds a catalog from the given profiles. Profiles are validated and
// copied; duplicate names are rejected.
func New(profiles []models.HardwareProfile) (*Catalog, error) {
	c := &Catalog{profiles: make(map[string]models.HardwareProfile, len(profiles))}
	for _, p := range profiles {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.Name, err)
		}
		if _, exists := c.profiles[p.Name]; exists {
			return nil, fmt.Errorf("duplicate hardware profile %q", p.Name)
		}
		c.profiles[p.Name] = p
	}
	return c, nil
}

func validate(p models.HardwareProfile) error {
	if p.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if p.Cores < 1 {
		return fmt.Errorf("cores must be >= 1, got %d", p.Cores)
	}
	if p.TDP <= 0 {
		return fmt.Errorf("TDP must be positive, got %.2f", p.TDP)
	}
	if p.TDPCoefficient <= 0 || p.TDPCoefficient > 1 {
		return fmt.Errorf("TDP coefficient must be in (0,1], got %.2f", p.TDPCoefficient)
	}
	if p.EmbodiedCarbon < 0 {
		return fmt.Errorf("embodied carbon must be >= 0, got %.2f", p.EmbodiedCarbon)
	}
	if p.LifetimeHours <= 0 {
		return fmt.Errorf("lifetime must be positive, got %.2f", p.LifetimeHours)
	}
	return nil
}

// Get returns the profile with the given name.
func (c *Catalog) Get(name string) (models.HardwareProfile, error) {
	p, ok := c.profiles[name]
	if !ok {
		return models.HardwareProfile{}, fmt.Errorf("unknown hardware profile %q", name)
	}
	return p, nil
}

// Names returns the profile names in the catalog, in no particular order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.profiles))
	for name := range c.profiles {
		names = append(names, name)
	}
	return names
}
