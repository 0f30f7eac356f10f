package planner

import (
	"sort"

	"github.com/kennelops/kennelplan/core/model"
)

// ageCapPlannedKm is the planned distance above which dogs aged eight or
// older are excluded when the age rule is enforced.
const ageCapPlannedKm = 20.0

const ageCapYears = 8

// Candidate couples a dog profile with its fatigue metrics for one planning
// invocation.
type Candidate struct {
	Profile model.DogProfile
	Metrics model.FatigueMetrics
}

// FilterCandidates joins profiles with fatigue metrics and applies the pool
// restrictions. Dogs missing from metrics get all-zero metrics. When subset
// is non-nil the pool is restricted to those names. When enforceAgeCap is
// set and the planned distance exceeds the cap, dogs aged eight or older are
// dropped. The result is sorted ascending by fatigue, stable in profile
// order, so callers can pick "freshest first" by scanning.
func FilterCandidates(profiles []model.DogProfile, metrics []model.FatigueMetrics, plannedKm float64, enforceAgeCap bool, subset []string) []Candidate {
	byDog := make(map[string]model.FatigueMetrics, len(metrics))
	for _, m := range metrics {
		byDog[m.Dog] = m
	}

	var allowed map[string]struct{}
	if subset != nil {
		allowed = make(map[string]struct{}, len(subset))
		for _, name := range subset {
			allowed[name] = struct{}{}
		}
	}

	out := make([]Candidate, 0, len(profiles))
	for _, p := range profiles {
		if allowed != nil {
			if _, ok := allowed[p.Name]; !ok {
				continue
			}
		}
		if enforceAgeCap && plannedKm > ageCapPlannedKm && p.AgeYears >= ageCapYears {
			continue
		}
		m, ok := byDog[p.Name]
		if !ok {
			m = model.FatigueMetrics{Dog: p.Name}
		}
		out = append(out, Candidate{Profile: p, Metrics: m})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Metrics.Fatigue < out[j].Metrics.Fatigue })
	return out
}
