package model

import "time"

// ScoreBreakdown explains how a suggestion score was built. Lower total is
// better; the conflict penalty is large enough to sink invalid rosters below
// every valid one without hiding them.
type ScoreBreakdown struct {
	FatigueSum      float64 `json:"fatigue_sum"`
	ConflictOK      bool    `json:"conflict_ok"`
	ConflictPenalty float64 `json:"conflict_penalty"`
	PairSplits      int     `json:"pair_splits"`
	PairPenalty     float64 `json:"pair_penalty"`
}

// Total returns the combined score.
func (b ScoreBreakdown) Total() float64 {
	return b.FatigueSum + b.ConflictPenalty + b.PairPenalty
}

// RoleAssignment maps each role to its ordered slot occupants. Slots left
// unfilled after assembly are padded with empty strings so the slice length
// always equals the plan's slot count for that role.
type RoleAssignment struct {
	Lead  []string `json:"lead"`
	Team  []string `json:"team"`
	Wheel []string `json:"wheel"`
}

// DogDetail carries per-dog context for presenting a suggestion.
type DogDetail struct {
	Fatigue  float64  `json:"fatigue"`
	AgeYears int      `json:"age_years"`
	Roles    []string `json:"roles"`
}

// TeamSuggestion is one scored team for a plan. Dogs holds the full roster
// in lead, team, wheel order; its length always equals the plan size and
// contains no duplicates.
type TeamSuggestion struct {
	Plan       TeamPlan             `json:"plan"`
	Dogs       []string             `json:"dogs"`
	Assignment RoleAssignment       `json:"assignment"`
	Score      float64              `json:"score"`
	Breakdown  ScoreBreakdown       `json:"breakdown"`
	Notes      []string             `json:"notes"`
	Details    map[string]DogDetail `json:"details,omitempty"`
}

// BatchResult is the outcome of one batch-planning run. Teams never share a
// dog; Remaining lists the unassigned pool, sorted by name.
type BatchResult struct {
	RunID     string           `json:"run_id,omitempty"`
	Day       time.Time        `json:"day"`
	Requested int              `json:"requested"`
	Teams     []TeamSuggestion `json:"teams"`
	Remaining []string         `json:"remaining"`
	Relaxed   bool             `json:"relaxed"`
}
