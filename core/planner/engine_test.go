package planner

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/kennelops/kennelplan/core/fatigue"
	"github.com/kennelops/kennelplan/core/model"
)

var planDay = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

// dayRec yields a single run-day record. With one record below the hard-day
// threshold the score weights sum to one, so fatigue equals km exactly.
func dayRec(dog string, km float64) model.WorkloadRecord {
	return model.WorkloadRecord{Dog: dog, Date: planDay, DistanceKm: km}
}

func lead(name string, age int) model.DogProfile {
	return model.DogProfile{Name: name, AgeYears: age, CanLead: true}
}

func teamDog(name string, age int) model.DogProfile {
	return model.DogProfile{Name: name, AgeYears: age, CanTeam: true}
}

func wheel(name string, age int) model.DogProfile {
	return model.DogProfile{Name: name, AgeYears: age, CanWheel: true}
}

func baseKennel() ([]model.DogProfile, []model.WorkloadRecord) {
	profiles := []model.DogProfile{
		lead("Landa", 6), lead("Vesta", 7),
		teamDog("Rikki", 7), teamDog("Joha", 7),
		wheel("Misha", 3), wheel("Graph", 3),
	}
	records := []model.WorkloadRecord{
		dayRec("Landa", 1), dayRec("Vesta", 5),
		dayRec("Rikki", 2), dayRec("Joha", 4),
		dayRec("Misha", 3), dayRec("Graph", 6),
	}
	return profiles, records
}

func request(size int) Request {
	return Request{Day: planDay, Size: size, PlannedKm: 10, Fatigue: fatigue.DefaultConfig()}
}

func TestEngine_Suggestions_FillsAllRoles(t *testing.T) {
	profiles, records := baseKennel()
	eng := NewEngine(profiles, nil, records, Policy{}, nil)

	sugg, err := eng.Suggestions(request(6))
	if err != nil {
		t.Fatal(err)
	}
	if len(sugg) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(sugg))
	}

	s := sugg[0]
	if len(s.Dogs) != 6 {
		t.Fatalf("roster size = %d, want 6", len(s.Dogs))
	}
	seen := make(map[string]struct{})
	for _, dog := range s.Dogs {
		if _, dup := seen[dog]; dup {
			t.Fatalf("dog %s appears twice in roster", dog)
		}
		seen[dog] = struct{}{}
	}

	// Hitch order: leads, team dogs, wheels, freshest first within each role.
	want := []string{"Landa", "Vesta", "Rikki", "Joha", "Misha", "Graph"}
	for i, dog := range want {
		if s.Dogs[i] != dog {
			t.Errorf("roster[%d] = %s, want %s", i, s.Dogs[i], dog)
		}
	}
	if !s.Breakdown.ConflictOK {
		t.Error("clean roster flagged as conflicting")
	}
	if math.Abs(s.Score-21) > 1e-9 {
		t.Errorf("score = %v, want 21 (sum of fatigue)", s.Score)
	}
}

func TestEngine_Suggestions_NotEnoughLeads(t *testing.T) {
	// Size 6 needs two leads; a single lead-capable dog cannot fill them.
	profiles := []model.DogProfile{
		lead("Landa", 6),
		teamDog("Rikki", 7), teamDog("Joha", 7), teamDog("Kurt", 9),
		wheel("Misha", 3), wheel("Graph", 3),
	}
	eng := NewEngine(profiles, nil, nil, Policy{}, nil)

	sugg, err := eng.Suggestions(request(6))
	if err != nil {
		t.Fatal(err)
	}
	if len(sugg) != 0 {
		t.Fatalf("short-on-leads pool must yield no suggestions, got %d", len(sugg))
	}
}

func TestEngine_Suggestions_ConflictPenalised(t *testing.T) {
	profiles, records := baseKennel()
	relations := []model.Relation{{A: "Landa", B: "Misha", Kind: model.RelationConflict}}
	eng := NewEngine(profiles, relations, records, Policy{}, nil)

	sugg, err := eng.Suggestions(request(6))
	if err != nil {
		t.Fatal(err)
	}
	if len(sugg) != 1 {
		t.Fatalf("conflicted roster must still be suggested, got %d", len(sugg))
	}

	s := sugg[0]
	if s.Breakdown.ConflictOK {
		t.Error("conflict not detected")
	}
	if math.Abs(s.Score-(21+5000)) > 1e-9 {
		t.Errorf("score = %v, want fatigue sum plus conflict penalty", s.Score)
	}
	if !hasNote(s.Notes, "Conflicts detected; this team is invalid by constraints.") {
		t.Errorf("missing conflict note, got %v", s.Notes)
	}
}

func TestEngine_Suggestions_RankedAscending(t *testing.T) {
	profiles, records := baseKennel()
	eng := NewEngine(profiles, nil, records, Policy{}, nil)

	sugg, err := eng.Suggestions(request(5))
	if err != nil {
		t.Fatal(err)
	}
	if len(sugg) != 2 {
		t.Fatalf("size 5 has two layouts, got %d suggestions", len(sugg))
	}
	if sugg[0].Plan.Layout != "1-2-2" || sugg[1].Plan.Layout != "2-1-2" {
		t.Errorf("layout order: %s, %s", sugg[0].Plan.Layout, sugg[1].Plan.Layout)
	}
	if sugg[0].Score > sugg[1].Score {
		t.Errorf("suggestions not ascending: %v > %v", sugg[0].Score, sugg[1].Score)
	}
}

func TestEngine_Suggestions_PairSplitsCounted(t *testing.T) {
	profiles, records := baseKennel()
	profiles = append(profiles, lead("Lisa", 7), teamDog("Kurt", 9))
	records = append(records, dayRec("Lisa", 20), dayRec("Kurt", 19))
	relations := []model.Relation{
		{A: "Landa", B: "Lisa", Kind: model.RelationPair},
		{A: "Lisa", B: "Landa", Kind: model.RelationPair},
		{A: "Rikki", B: "Kurt", Kind: model.RelationPair},
		{A: "Kurt", B: "Rikki", Kind: model.RelationPair},
	}
	eng := NewEngine(profiles, relations, records, Policy{}, nil)

	req := request(6)
	req.KeepPairsSoft = true
	sugg, err := eng.Suggestions(req)
	if err != nil {
		t.Fatal(err)
	}
	if len(sugg) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(sugg))
	}

	s := sugg[0]
	if s.Breakdown.PairSplits != 1 {
		t.Errorf("PairSplits = %d, want 1", s.Breakdown.PairSplits)
	}
	if !hasNote(s.Notes, "Pairs split: 1") {
		t.Errorf("missing split note, got %v", s.Notes)
	}
	if math.Abs(s.Breakdown.PairPenalty-80) > 1e-9 {
		t.Errorf("PairPenalty = %v, want 80", s.Breakdown.PairPenalty)
	}
}

func TestEngine_Suggestions_AgeRuleNote(t *testing.T) {
	profiles, records := baseKennel()
	eng := NewEngine(profiles, nil, records, Policy{}, nil)

	req := request(6)
	req.PlannedKm = 25
	req.EnforceAgeCap = true
	sugg, err := eng.Suggestions(req)
	if err != nil {
		t.Fatal(err)
	}
	if len(sugg) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(sugg))
	}
	if !hasNote(sugg[0].Notes, "Age rule enabled: 8+ excluded when planned km > 20.") {
		t.Errorf("missing age rule note, got %v", sugg[0].Notes)
	}
}

func TestEngine_Suggestions_UnsupportedSize(t *testing.T) {
	profiles, records := baseKennel()
	eng := NewEngine(profiles, nil, records, Policy{}, nil)

	if _, err := eng.Suggestions(request(7)); !errors.Is(err, ErrUnsupportedSize) {
		t.Errorf("expected ErrUnsupportedSize, got %v", err)
	}
}

func TestEngine_Suggestions_Details(t *testing.T) {
	profiles, records := baseKennel()
	eng := NewEngine(profiles, nil, records, Policy{}, nil)

	sugg, err := eng.Suggestions(request(6))
	if err != nil {
		t.Fatal(err)
	}
	d, ok := sugg[0].Details["Misha"]
	if !ok {
		t.Fatal("missing detail for Misha")
	}
	if d.Fatigue != 3 || d.AgeYears != 3 {
		t.Errorf("detail = %+v", d)
	}
	if len(d.Roles) != 1 || d.Roles[0] != model.RoleWheel.String() {
		t.Errorf("roles = %v, want wheel only", d.Roles)
	}
}

func hasNote(notes []string, want string) bool {
	for _, n := range notes {
		if n == want {
			return true
		}
	}
	return false
}
