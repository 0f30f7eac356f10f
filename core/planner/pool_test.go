package planner

import (
	"strings"
	"testing"

	"github.com/kennelops/kennelplan/core/model"
)

func statsPool() []Candidate {
	profiles := []model.DogProfile{
		{Name: "A", AgeYears: 3, CanLead: true, CanTeam: true},
		{Name: "B", AgeYears: 8, CanTeam: true, CanWheel: true},
		{Name: "C", AgeYears: 11, CanWheel: true},
		{Name: "D", AgeYears: 5, CanLead: true},
	}
	out := make([]Candidate, len(profiles))
	for i, p := range profiles {
		out[i] = Candidate{Profile: p}
	}
	return out
}

func TestStats(t *testing.T) {
	s := Stats(statsPool())
	want := model.PoolStats{Total: 4, Lead: 2, Team: 2, Wheel: 2, Age8Plus: 2}
	if s != want {
		t.Errorf("Stats = %+v, want %+v", s, want)
	}
}

func TestTheoreticalMaxTeams(t *testing.T) {
	pool := model.PoolStats{Total: 12, Lead: 3, Team: 6, Wheel: 4}

	plans6, _ := PlansForSize(6)
	if got := TheoreticalMaxTeams(pool, plans6); got != 1 {
		t.Errorf("size 6 max = %d, want 1 (leads are the bottleneck)", got)
	}

	// Size 5 admits a single-lead layout, so the same pool stretches further.
	plans5, _ := PlansForSize(5)
	if got := TheoreticalMaxTeams(pool, plans5); got != 2 {
		t.Errorf("size 5 max = %d, want 2", got)
	}
}

func TestUnmetReasons_CountShortfall(t *testing.T) {
	pool := model.PoolStats{Total: 12, Lead: 3, Team: 6, Wheel: 4}
	plans, _ := PlansForSize(6)

	reasons := UnmetReasons(pool, plans, 3)
	if len(reasons) == 0 {
		t.Fatal("expected reasons")
	}
	if reasons[0] != "Requested 3 teams, but the theoretical maximum is 1 (best layout 2-2-2)." {
		t.Errorf("headline = %q", reasons[0])
	}

	joined := strings.Join(reasons, "\n")
	for _, want := range []string{
		"Not enough dogs: need 18, available 12.",
		"Not enough leaders: need 6, available 3.",
		"Not enough wheels: need 6, available 4.",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %v", want, reasons)
		}
	}
	if strings.Contains(joined, "Not enough team dogs") {
		t.Errorf("team dogs are sufficient, got %v", reasons)
	}
}

func TestUnmetReasons_CountsSufficient(t *testing.T) {
	pool := model.PoolStats{Total: 12, Lead: 4, Team: 8, Wheel: 4}
	plans, _ := PlansForSize(6)

	reasons := UnmetReasons(pool, plans, 2)
	if len(reasons) != 2 {
		t.Fatalf("got %d reasons, want 2", len(reasons))
	}
	if !strings.Contains(reasons[0], "constraints (conflicts) or pair-keeping") {
		t.Errorf("headline = %q", reasons[0])
	}
}

func TestUnmetReasons_NoRequest(t *testing.T) {
	plans, _ := PlansForSize(6)
	if reasons := UnmetReasons(model.PoolStats{}, plans, 0); reasons != nil {
		t.Errorf("zero request should yield nil, got %v", reasons)
	}
}
