package scorer

import "fmt"

// DefaultDampening is the congestion constant K used when none is
// configured. Committed energies are tiny fractions of a MWh, so K sits in
// the 1e6 range to make the penalty comparable to raw intensities.
const DefaultDampening = 3.5e6

// Names of the built-in strategies.
const (
	StrategyPlain    = "plain"
	StrategyDampened = "dampened"
	StrategyHeadroom = "headroom"
)

// New resolves a strategy by name. Unknown names are rejected here, before
// any job is scored.
func New(name string, k float64) (Strategy, error) {
	if k == 0 {
		k = DefaultDampening
	}
	switch name {
	case StrategyPlain:
		return Plain{}, nil
	case StrategyDampened:
		return Dampened{K: k}, nil
	case StrategyHeadroom:
		return Headroom{K: k}, nil
	default:
		return nil, fmt.Errorf("unknown scoring strategy: %s", name)
	}
}

// Plain scores each hour by its raw forecast intensity.
type Plain struct{}

func (Plain) Score(raw, committed float64) float64 {
	return raw
}

func (Plain) Name() string { return StrategyPlain }

// Dampened adds a congestion penalty that grows with committed energy and
// shrinks as baseline intensity rises. Without it every job piles onto the
// single cheapest hour.
type Dampened struct {
	K float64
}

func (d Dampened) Score(raw, committed float64) float64 {
	if raw == 0 {
		// Zero-intensity hours carry the full congestion penalty.
		return d.K * committed
	}
	return raw + d.K*committed/raw
}

func (d Dampened) Name() string { return StrategyDampened }

// Headroom penalizes committed load linearly regardless of baseline
// intensity, spreading jobs toward the emptiest hours.
type Headroom struct {
	K float64
}

func (h Headroom) Score(raw, committed float64) float64 {
	return raw + h.K*committed
}

func (h Headroom) Name() string { return StrategyHeadroom }
