package planner

import (
	"testing"

	"github.com/kennelops/kennelplan/core/model"
)

func fm(dog string, fatigue float64) model.FatigueMetrics {
	return model.FatigueMetrics{Dog: dog, Fatigue: fatigue}
}

func TestFilterCandidates_SortedByFatigue(t *testing.T) {
	profiles := []model.DogProfile{
		{Name: "A", AgeYears: 3, CanTeam: true},
		{Name: "B", AgeYears: 3, CanTeam: true},
		{Name: "C", AgeYears: 3, CanTeam: true},
	}
	metrics := []model.FatigueMetrics{fm("A", 12), fm("B", 3), fm("C", 7)}

	pool := FilterCandidates(profiles, metrics, 15, false, nil)
	if len(pool) != 3 {
		t.Fatalf("got %d candidates, want 3", len(pool))
	}
	want := []string{"B", "C", "A"}
	for i, name := range want {
		if pool[i].Profile.Name != name {
			t.Errorf("candidate %d = %s, want %s", i, pool[i].Profile.Name, name)
		}
	}
}

func TestFilterCandidates_MissingMetricsAreZero(t *testing.T) {
	profiles := []model.DogProfile{{Name: "Rested", AgeYears: 4, CanTeam: true}}
	pool := FilterCandidates(profiles, nil, 15, false, nil)
	if len(pool) != 1 {
		t.Fatalf("got %d candidates, want 1", len(pool))
	}
	if pool[0].Metrics.Fatigue != 0 {
		t.Errorf("unworked dog should have zero fatigue, got %v", pool[0].Metrics.Fatigue)
	}
}

func TestFilterCandidates_Subset(t *testing.T) {
	profiles := []model.DogProfile{
		{Name: "A", CanTeam: true},
		{Name: "B", CanTeam: true},
	}
	pool := FilterCandidates(profiles, nil, 15, false, []string{"B"})
	if len(pool) != 1 || pool[0].Profile.Name != "B" {
		t.Fatalf("subset restriction failed: %+v", pool)
	}

	// An empty non-nil subset means nobody.
	pool = FilterCandidates(profiles, nil, 15, false, []string{})
	if len(pool) != 0 {
		t.Fatalf("empty subset should yield empty pool, got %d", len(pool))
	}
}

func TestFilterCandidates_AgeCap(t *testing.T) {
	profiles := []model.DogProfile{
		{Name: "Young", AgeYears: 7, CanTeam: true},
		{Name: "Senior", AgeYears: 8, CanTeam: true},
		{Name: "Elder", AgeYears: 11, CanTeam: true},
	}

	// Long run with the rule on: seniors drop out.
	pool := FilterCandidates(profiles, nil, 25, true, nil)
	if len(pool) != 1 || pool[0].Profile.Name != "Young" {
		t.Fatalf("long run should keep only Young, got %+v", pool)
	}

	// At or below the distance cap the rule does not trigger.
	pool = FilterCandidates(profiles, nil, 20, true, nil)
	if len(pool) != 3 {
		t.Errorf("20 km run should keep everyone, got %d", len(pool))
	}

	// Rule off: distance is irrelevant.
	pool = FilterCandidates(profiles, nil, 25, false, nil)
	if len(pool) != 3 {
		t.Errorf("rule off should keep everyone, got %d", len(pool))
	}
}
