// Package scorer ranks the 24 hourly slots of a daily cycle by a
// carbon-intensity score. Lower scores are preferred. Strategies are
// resolved once through New; an unknown name fails at configuration time.
package scorer

import (
	"sort"

	"github.com/greenops/carbon-scheduler/pkg/intensity"
)

// Strategy computes the selection score for one hour from its forecast
// intensity and the energy already committed there. Implementations must be
// pure: identical inputs yield identical scores.
type Strategy interface {
	Score(raw, committed float64) float64
	Name() string
}

// RankedSlot is one hour with its computed score.
type RankedSlot struct {
	Hour  int
	Score float64
}

// Rank scores every hour against an immutable snapshot of committed energy
// and returns the slots ascending by score, ties broken by hour index. It is
// recomputed per submission; committed energy changes after every commit.
func Rank(s Strategy, profile *intensity.Profile, committed [intensity.Hours]float64) []RankedSlot {
	slots := make([]RankedSlot, intensity.Hours)
	for hour := 0; hour < intensity.Hours; hour++ {
		slots[hour] = RankedSlot{
			Hour:  hour,
			Score: s.Score(profile.At(hour), committed[hour]),
		}
	}
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Score != slots[j].Score {
			return slots[i].Score < slots[j].Score
		}
		return slots[i].Hour < slots[j].Hour
	})
	return slots
}
