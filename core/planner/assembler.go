package planner

import (
	"fmt"

	"github.com/kennelops/kennelplan/core/constraints"
	"github.com/kennelops/kennelplan/core/model"
)

// Policy carries the soft-constraint penalty weights. Conflicted rosters are
// never dropped; the conflict penalty just sinks them below every clean
// roster so a human can still see and override them.
type Policy struct {
	ConflictPenalty  float64 `json:"conflict_penalty"`
	PairSplitPenalty float64 `json:"pair_split_penalty"`
}

// DefaultPolicy returns the standard penalty weights.
func DefaultPolicy() Policy {
	return Policy{ConflictPenalty: 5000, PairSplitPenalty: 80}
}

// SetDefaults fills zero-valued penalties with the defaults.
func (p *Policy) SetDefaults() {
	def := DefaultPolicy()
	if p.ConflictPenalty <= 0 {
		p.ConflictPenalty = def.ConflictPenalty
	}
	if p.PairSplitPenalty <= 0 {
		p.PairSplitPenalty = def.PairSplitPenalty
	}
}

// assembler builds one team for one plan from a filtered pool. The pool must
// already be sorted ascending by fatigue.
type assembler struct {
	cons   *constraints.Model
	policy Policy
}

// assemble runs the greedy multi-role selection. It returns false when a
// role cannot be filled, in which case the plan is skipped; every other
// outcome produces a suggestion, conflicts included.
func (a assembler) assemble(pool []Candidate, plan model.TeamPlan, keepPairsSoft bool, baseNotes []string) (model.TeamSuggestion, bool) {
	used := make(map[string]struct{})

	// Wheels first: the scarcest capability in most kennels.
	wheels := pickRole(pool, model.RoleWheel, plan.WheelSlots, used)
	markUsed(used, wheels)
	leads := pickRole(pool, model.RoleLead, plan.LeadSlots, used)
	markUsed(used, leads)
	teams := pickRole(pool, model.RoleTeam, plan.TeamSlots, used)
	markUsed(used, teams)

	if len(wheels) < plan.WheelSlots || len(leads) < plan.LeadSlots || len(teams) < plan.TeamSlots {
		return model.TeamSuggestion{}, false
	}

	if keepPairsSoft {
		// Extend each role group with declared mates of its members,
		// recomputing the global used-set between roles so no dog is
		// claimed twice.
		wheelUsed := setOf(wheels)
		wheels = a.tryAddMates(wheels, plan.WheelSlots, pool, wheelUsed)

		used = setOf(wheels)
		leads = pickRole(pool, model.RoleLead, plan.LeadSlots, used)
		markUsed(used, leads)
		leads = a.tryAddMates(leads, plan.LeadSlots, pool, used)

		used = setOf(append(append([]string{}, wheels...), leads...))
		teams = pickRole(pool, model.RoleTeam, plan.TeamSlots, used)
		markUsed(used, teams)
		teams = a.tryAddMates(teams, plan.TeamSlots, pool, used)
	}

	// Final roster in hitch order: leads, then team dogs, then wheels.
	roster := make([]string, 0, plan.Size)
	seen := make(map[string]struct{})
	for _, group := range [][]string{leads, teams, wheels} {
		for _, dog := range group {
			if _, ok := seen[dog]; ok {
				continue
			}
			seen[dog] = struct{}{}
			roster = append(roster, dog)
		}
	}

	// Backfill with the freshest unused dogs regardless of role, then cut
	// to the exact plan size.
	for _, c := range pool {
		if len(roster) >= plan.Size {
			break
		}
		if _, ok := seen[c.Profile.Name]; ok {
			continue
		}
		seen[c.Profile.Name] = struct{}{}
		roster = append(roster, c.Profile.Name)
	}
	if len(roster) > plan.Size {
		roster = roster[:plan.Size]
	}

	notes := append([]string{}, baseNotes...)

	conflictOK := a.conflictsOK(roster)
	if !conflictOK {
		notes = append(notes, "Conflicts detected; this team is invalid by constraints.")
	}

	pairSplits := 0
	if keepPairsSoft {
		pairSplits = a.pairSplits(roster)
		if pairSplits > 0 {
			notes = append(notes, fmt.Sprintf("Pairs split: %d", pairSplits))
		}
	}

	fatigueByDog := make(map[string]float64, len(pool))
	for _, c := range pool {
		fatigueByDog[c.Profile.Name] = c.Metrics.Fatigue
	}
	var fatigueSum float64
	for _, dog := range roster {
		fatigueSum += fatigueByDog[dog]
	}

	breakdown := model.ScoreBreakdown{
		FatigueSum: fatigueSum,
		ConflictOK: conflictOK,
		PairSplits: pairSplits,
	}
	if !conflictOK {
		breakdown.ConflictPenalty = a.policy.ConflictPenalty
	}
	breakdown.PairPenalty = a.policy.PairSplitPenalty * float64(pairSplits)

	return model.TeamSuggestion{
		Plan: plan,
		Dogs: roster,
		Assignment: model.RoleAssignment{
			Lead:  pad(leads, plan.LeadSlots),
			Team:  pad(teams, plan.TeamSlots),
			Wheel: pad(wheels, plan.WheelSlots),
		},
		Score:     breakdown.Total(),
		Breakdown: breakdown,
		Notes:     notes,
	}, true
}

// pickRole scans the fatigue-sorted pool for up to k dogs capable of the
// role and not already used.
func pickRole(pool []Candidate, role model.Role, k int, used map[string]struct{}) []string {
	if k <= 0 {
		return nil
	}
	var out []string
	for _, c := range pool {
		if len(out) >= k {
			break
		}
		if !c.Profile.CanRun(role) {
			continue
		}
		if _, ok := used[c.Profile.Name]; ok {
			continue
		}
		out = append(out, c.Profile.Name)
	}
	return out
}

// tryAddMates softly extends a role group with declared mates of its
// members. It never forces a mate in, never exceeds the slot count and
// never steals a dog claimed by another role.
func (a assembler) tryAddMates(current []string, k int, pool []Candidate, used map[string]struct{}) []string {
	if len(current) >= k {
		return current[:k]
	}
	available := make(map[string]struct{}, len(pool))
	for _, c := range pool {
		available[c.Profile.Name] = struct{}{}
	}
	out := append([]string{}, current...)
	inGroup := setOf(out)
	for _, dog := range current {
		if len(out) >= k {
			break
		}
		mate, ok := a.cons.PairMate(dog)
		if !ok {
			continue
		}
		if _, dup := inGroup[mate]; dup {
			continue
		}
		if _, taken := used[mate]; taken {
			continue
		}
		if _, present := available[mate]; !present {
			continue
		}
		out = append(out, mate)
		inGroup[mate] = struct{}{}
		used[mate] = struct{}{}
	}
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// conflictsOK reports whether no unordered pair within the roster is in the
// conflict relation.
func (a assembler) conflictsOK(roster []string) bool {
	for i := 0; i < len(roster); i++ {
		for j := i + 1; j < len(roster); j++ {
			if a.cons.InConflict(roster[i], roster[j]) {
				return false
			}
		}
	}
	return true
}

// pairSplits counts roster dogs whose declared mate is missing from the
// roster, halved because symmetric pair declarations count each split twice.
func (a assembler) pairSplits(roster []string) int {
	onTeam := setOf(roster)
	missing := 0
	for _, dog := range roster {
		mate, ok := a.cons.PairMate(dog)
		if !ok || mate == "" {
			continue
		}
		if _, present := onTeam[mate]; !present {
			missing++
		}
	}
	return missing / 2
}

func pad(group []string, slots int) []string {
	out := make([]string, 0, slots)
	for _, dog := range group {
		if len(out) >= slots {
			break
		}
		out = append(out, dog)
	}
	for len(out) < slots {
		out = append(out, "")
	}
	return out
}

func setOf(names []string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func markUsed(used map[string]struct{}, names []string) {
	for _, n := range names {
		used[n] = struct{}{}
	}
}
