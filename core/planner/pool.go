package planner

import (
	"fmt"

	"github.com/kennelops/kennelplan/core/model"
)

// Stats summarises a filtered candidate pool.
func Stats(pool []Candidate) model.PoolStats {
	var s model.PoolStats
	for _, c := range pool {
		s.Total++
		if c.Profile.CanLead {
			s.Lead++
		}
		if c.Profile.CanTeam {
			s.Team++
		}
		if c.Profile.CanWheel {
			s.Wheel++
		}
		if c.Profile.AgeYears >= ageCapYears {
			s.Age8Plus++
		}
	}
	return s
}

// TheoreticalMaxTeams is an upper bound on how many teams the pool could
// yield by counts alone, taking the best layout. It ignores conflicts and
// pair preferences, so the real assembler may build fewer but never more.
func TheoreticalMaxTeams(pool model.PoolStats, plans []model.TeamPlan) int {
	best := 0
	for _, p := range plans {
		if cap := layoutCapacity(pool, p); cap > best {
			best = cap
		}
	}
	return best
}

func layoutCapacity(pool model.PoolStats, p model.TeamPlan) int {
	if p.Size <= 0 {
		return 0
	}
	cap := pool.Total / p.Size
	if p.LeadSlots > 0 && pool.Lead/p.LeadSlots < cap {
		cap = pool.Lead / p.LeadSlots
	}
	if p.WheelSlots > 0 && pool.Wheel/p.WheelSlots < cap {
		cap = pool.Wheel / p.WheelSlots
	}
	if p.TeamSlots > 0 && pool.Team/p.TeamSlots < cap {
		cap = pool.Team / p.TeamSlots
	}
	return cap
}

// UnmetReasons explains why a batch request could not be met, in pool terms.
// The diagnosis is necessary-not-sufficient: when the count bound is already
// satisfied the blockers must be conflicts, pair-keeping or greedy effects,
// which the bound cannot see.
func UnmetReasons(pool model.PoolStats, plans []model.TeamPlan, requestedTeams int) []string {
	if requestedTeams <= 0 {
		return nil
	}
	maxPossible := TheoreticalMaxTeams(pool, plans)
	if maxPossible >= requestedTeams {
		return []string{
			"Counts look sufficient, but constraints (conflicts) or pair-keeping may block valid combinations.",
			"Try disabling pair-keeping, expanding the workload history range, or adjusting the team size.",
		}
	}

	var bestPlan *model.TeamPlan
	bestCap := -1
	for i := range plans {
		if cap := layoutCapacity(pool, plans[i]); cap > bestCap {
			bestCap = cap
			bestPlan = &plans[i]
		}
	}
	if bestPlan == nil {
		return []string{"No valid layout found for this team size."}
	}

	out := []string{fmt.Sprintf(
		"Requested %d teams, but the theoretical maximum is %d (best layout %s).",
		requestedTeams, maxPossible, bestPlan.Layout,
	)}

	needTotal := bestPlan.Size * requestedTeams
	needLead := bestPlan.LeadSlots * requestedTeams
	needTeam := bestPlan.TeamSlots * requestedTeams
	needWheel := bestPlan.WheelSlots * requestedTeams

	if pool.Total < needTotal {
		out = append(out, fmt.Sprintf("Not enough dogs: need %d, available %d.", needTotal, pool.Total))
	}
	if pool.Lead < needLead {
		out = append(out, fmt.Sprintf("Not enough leaders: need %d, available %d.", needLead, pool.Lead))
	}
	if pool.Team < needTeam {
		out = append(out, fmt.Sprintf("Not enough team dogs: need %d, available %d.", needTeam, pool.Team))
	}
	if pool.Wheel < needWheel {
		out = append(out, fmt.Sprintf("Not enough wheels: need %d, available %d.", needWheel, pool.Wheel))
	}
	return out
}
