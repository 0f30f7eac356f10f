// Package batch builds several non-overlapping teams from one pool by
// running the planner round by round on a shrinking candidate set.
package batch

import (
	"sort"
	"time"

	"github.com/kennelops/kennelplan/core/fatigue"
	"github.com/kennelops/kennelplan/core/logger"
	"github.com/kennelops/kennelplan/core/model"
	"github.com/kennelops/kennelplan/core/planner"
)

// Request carries the parameters of one batch run.
type Request struct {
	Day           time.Time
	Size          int
	TeamsCount    int
	PlannedKm     float64
	KeepPairsSoft bool
	EnforceAgeCap bool
	Fatigue       fatigue.Config
	// Dogs is the full pool for the run. When nil, every profiled dog is
	// eligible.
	Dogs []string
}

// Scheduler repeats single-team assembly without reusing dogs. When a round
// fails with pair-keeping enabled, the first failure is retried once with
// pair-keeping relaxed; a second failure stops the batch since later rounds
// only see the same or a smaller pool.
type Scheduler struct {
	Engine *planner.Engine
	Log    logger.Logger
}

// Build produces up to req.TeamsCount teams. A shortfall is a normal
// outcome, not an error; the caller can diagnose it via planner.UnmetReasons.
func (s *Scheduler) Build(req Request) (model.BatchResult, error) {
	log := logger.OrNop(s.Log)

	pool := req.Dogs
	if pool == nil {
		for _, p := range s.Engine.Constraints().Profiles() {
			pool = append(pool, p.Name)
		}
	}
	remaining := make(map[string]struct{}, len(pool))
	for _, dog := range pool {
		remaining[dog] = struct{}{}
	}

	res := model.BatchResult{
		Day:       model.Day(req.Day),
		Requested: req.TeamsCount,
	}

	failedRounds := 0
	for round := 0; round < req.TeamsCount; round++ {
		if len(remaining) < req.Size {
			break
		}

		best, err := s.bestSuggestion(req, sortedNames(remaining), req.KeepPairsSoft)
		if err != nil {
			return model.BatchResult{}, err
		}
		if best == nil {
			failedRounds++
			if req.KeepPairsSoft && failedRounds <= 1 {
				// Pair-keeping can wedge an otherwise feasible
				// round; retry this round once without it.
				log.Infof("round %d failed with pair-keeping, retrying relaxed", round+1)
				best, err = s.bestSuggestion(req, sortedNames(remaining), false)
				if err != nil {
					return model.BatchResult{}, err
				}
				if best != nil {
					res.Relaxed = true
				}
			}
		}
		if best == nil {
			break
		}

		res.Teams = append(res.Teams, *best)
		for _, dog := range best.Dogs {
			delete(remaining, dog)
		}
	}

	res.Remaining = sortedNames(remaining)
	log.Debugw("batch complete", map[string]any{
		"requested": req.TeamsCount,
		"built":     len(res.Teams),
		"remaining": len(res.Remaining),
		"relaxed":   res.Relaxed,
	})
	return res, nil
}

func (s *Scheduler) bestSuggestion(req Request, candidates []string, keepPairsSoft bool) (*model.TeamSuggestion, error) {
	suggestions, err := s.Engine.Suggestions(planner.Request{
		Day:           req.Day,
		Size:          req.Size,
		PlannedKm:     req.PlannedKm,
		KeepPairsSoft: keepPairsSoft,
		EnforceAgeCap: req.EnforceAgeCap,
		Fatigue:       req.Fatigue,
		Candidates:    candidates,
	})
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, nil
	}
	return &suggestions[0], nil
}

func sortedNames(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
