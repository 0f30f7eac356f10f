package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/kennelops/kennelplan/core/model"
)

func TestWriteWideCSV(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)
	records := []model.WorkloadRecord{
		{Dog: "Togo", Date: start.AddDate(0, 0, 1), DistanceKm: 7},
		{Dog: "Balto", Date: start, DistanceKm: 10},
		{Dog: "Balto", Date: start.Add(6 * time.Hour), DistanceKm: 2.5}, // same day, summed
		{Dog: "Balto", Date: start.AddDate(0, 0, 5), DistanceKm: 99},    // outside range
	}

	var buf bytes.Buffer
	if err := WriteWideCSV(&buf, records, start, end); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	wantHeader := []string{"dog_name", "2026-01-01", "2026-01-02", "2026-01-03"}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2 dogs", len(rows))
	}
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %s, want %s", i, rows[0][i], h)
		}
	}
	// Dogs sorted by name, missing days zero-filled.
	if got := rows[1]; got[0] != "Balto" || got[1] != "12.5" || got[2] != "0" || got[3] != "0" {
		t.Errorf("Balto row = %v", got)
	}
	if got := rows[2]; got[0] != "Togo" || got[1] != "0" || got[2] != "7" || got[3] != "0" {
		t.Errorf("Togo row = %v", got)
	}
}

func TestWriteBatchCSV(t *testing.T) {
	res := model.BatchResult{
		RunID: "run-1",
		Teams: []model.TeamSuggestion{
			{
				Assignment: model.RoleAssignment{
					Lead:  []string{"Landa", ""},
					Team:  []string{"Rikki", "Joha"},
					Wheel: []string{"Misha", "Graph"},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteBatchCSV(&buf, res); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Header plus five filled slots; the empty lead slot is dropped.
	if len(rows) != 6 {
		t.Fatalf("got %d rows, want 6", len(rows))
	}
	if got := rows[1]; got[0] != "run-1" || got[1] != "1" || got[2] != "lead" || got[3] != "Landa" {
		t.Errorf("first slot row = %v", got)
	}
}

func TestWriteBatchJSON(t *testing.T) {
	res := model.BatchResult{RunID: "run-2", Requested: 2}
	var buf bytes.Buffer
	if err := WriteBatchJSON(&buf, res); err != nil {
		t.Fatal(err)
	}
	var out model.BatchResult
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.RunID != "run-2" || out.Requested != 2 {
		t.Errorf("round trip = %+v", out)
	}
}
