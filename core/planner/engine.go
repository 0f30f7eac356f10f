// Package planner implements the constraint-based team-assembly engine:
// candidate filtering, greedy multi-role selection with soft pair-keeping,
// suggestion ranking and capacity diagnostics. All computation is pure and
// operates on an immutable snapshot taken at construction.
package planner

import (
	"fmt"
	"time"

	"github.com/kennelops/kennelplan/core/constraints"
	"github.com/kennelops/kennelplan/core/fatigue"
	"github.com/kennelops/kennelplan/core/logger"
	"github.com/kennelops/kennelplan/core/model"
)

// Request carries the parameters of one suggestion run.
type Request struct {
	Day           time.Time
	Size          int
	PlannedKm     float64
	KeepPairsSoft bool
	EnforceAgeCap bool
	Fatigue       fatigue.Config
	// Candidates restricts the pool to these names when non-nil. The
	// batch scheduler uses this to shrink the pool between rounds.
	Candidates []string
}

// Engine produces scored team suggestions from one data snapshot. It holds
// no mutable state and is safe for concurrent use with distinct requests.
type Engine struct {
	cons    *constraints.Model
	records []model.WorkloadRecord
	policy  Policy
	log     logger.Logger
}

// NewEngine builds an engine over a snapshot of profiles, relations and
// workload records.
func NewEngine(profiles []model.DogProfile, relations []model.Relation, records []model.WorkloadRecord, policy Policy, log logger.Logger) *Engine {
	policy.SetDefaults()
	log = logger.OrNop(log)
	return &Engine{
		cons:    constraints.New(profiles, relations, log),
		records: records,
		policy:  policy,
		log:     log,
	}
}

// Constraints exposes the typed constraint view built from the snapshot.
func (e *Engine) Constraints() *constraints.Model { return e.cons }

// Fatigue computes per-dog fatigue metrics for the given day, ascending by
// fatigue.
func (e *Engine) Fatigue(day time.Time, cfg fatigue.Config) []model.FatigueMetrics {
	return fatigue.Compute(day, e.records, cfg)
}

// Suggestions builds at most five scored team suggestions for the requested
// size, ascending by score. An unsupported size is an error; an empty or
// fully filtered pool is a normal outcome and yields an empty list.
func (e *Engine) Suggestions(req Request) ([]model.TeamSuggestion, error) {
	plans, err := PlansForSize(req.Size)
	if err != nil {
		return nil, err
	}

	metrics := e.Fatigue(req.Day, req.Fatigue)
	pool := FilterCandidates(e.cons.Profiles(), metrics, req.PlannedKm, req.EnforceAgeCap, req.Candidates)

	var baseNotes []string
	if req.EnforceAgeCap && req.PlannedKm > ageCapPlannedKm {
		baseNotes = append(baseNotes, fmt.Sprintf("Age rule enabled: %d+ excluded when planned km > %.0f.", ageCapYears, ageCapPlannedKm))
	}

	details := detailMap(pool)
	asm := assembler{cons: e.cons, policy: e.policy}

	var suggestions []model.TeamSuggestion
	for _, plan := range plans {
		s, ok := asm.assemble(pool, plan, req.KeepPairsSoft, baseNotes)
		if !ok {
			e.log.Debugw("layout skipped: insufficient role candidates", map[string]any{
				"layout": plan.Layout,
				"size":   plan.Size,
				"pool":   len(pool),
			})
			continue
		}
		s.Details = details
		suggestions = append(suggestions, s)
	}
	return rankSuggestions(suggestions), nil
}

// PoolStats summarises the pool after the same filters the assembler applies.
func (e *Engine) PoolStats(req Request) model.PoolStats {
	metrics := e.Fatigue(req.Day, req.Fatigue)
	pool := FilterCandidates(e.cons.Profiles(), metrics, req.PlannedKm, req.EnforceAgeCap, req.Candidates)
	return Stats(pool)
}

func detailMap(pool []Candidate) map[string]model.DogDetail {
	details := make(map[string]model.DogDetail, len(pool))
	for _, c := range pool {
		details[c.Profile.Name] = model.DogDetail{
			Fatigue:  c.Metrics.Fatigue,
			AgeYears: c.Profile.AgeYears,
			Roles:    c.Profile.Roles(),
		}
	}
	return details
}
