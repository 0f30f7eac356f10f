package report

import (
	"math"
	"testing"
	"time"

	"github.com/kennelops/kennelplan/core/model"
)

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func rec(dog string, dayOffset int, km float64) model.WorkloadRecord {
	return model.WorkloadRecord{Dog: dog, Date: base.AddDate(0, 0, dayOffset), DistanceKm: km}
}

func TestCompute_StreakBlock(t *testing.T) {
	records := []model.WorkloadRecord{
		rec("Kurt", 0, 20),
		rec("Kurt", 1, 22),
		rec("Kurt", 2, 18),
		rec("Kurt", 4, 25), // gap breaks the run
	}
	rep := Compute(records, Thresholds{})

	if len(rep.Streaks) != 1 {
		t.Fatalf("got %d streaks, want 1", len(rep.Streaks))
	}
	b := rep.Streaks[0]
	if b.Dog != "Kurt" || b.Days != 3 {
		t.Errorf("block = %+v", b)
	}
	if !b.Start.Equal(base) || !b.End.Equal(base.AddDate(0, 0, 2)) {
		t.Errorf("block range %v..%v", b.Start, b.End)
	}
	if want := 20.0; math.Abs(b.AvgKm-want) > 1e-9 {
		t.Errorf("AvgKm = %v, want %v", b.AvgKm, want)
	}
	if b.MaxKm != 22 {
		t.Errorf("MaxKm = %v, want 22", b.MaxKm)
	}
}

func TestCompute_EasyDayBreaksStreak(t *testing.T) {
	records := []model.WorkloadRecord{
		rec("Kurt", 0, 20),
		rec("Kurt", 1, 5),
		rec("Kurt", 2, 20),
		rec("Kurt", 3, 20),
	}
	rep := Compute(records, Thresholds{})
	if len(rep.Streaks) != 0 {
		t.Errorf("two-day runs must not be flagged, got %+v", rep.Streaks)
	}
}

func TestCompute_HardShare(t *testing.T) {
	// Two hard days out of four active: 50% with the default 40% threshold.
	records := []model.WorkloadRecord{
		rec("Vita", 0, 20),
		rec("Vita", 2, 5),
		rec("Vita", 4, 19),
		rec("Vita", 6, 8),
	}
	rep := Compute(records, Thresholds{})

	if len(rep.Shares) != 1 {
		t.Fatalf("got %d shares, want 1", len(rep.Shares))
	}
	s := rep.Shares[0]
	if s.Days != 4 || s.HardDays != 2 {
		t.Errorf("share = %+v", s)
	}
	if math.Abs(s.HardSharePct-50) > 1e-9 {
		t.Errorf("HardSharePct = %v, want 50", s.HardSharePct)
	}
	if math.Abs(s.TotalKm-52) > 1e-9 {
		t.Errorf("TotalKm = %v, want 52", s.TotalKm)
	}
}

func TestCompute_RollingPeaks(t *testing.T) {
	// Seven consecutive 30 km days: the rolling total ramps to 210 and
	// crosses the 180 km default on the sixth day.
	var records []model.WorkloadRecord
	for i := 0; i < 7; i++ {
		records = append(records, rec("Ray", i, 30))
	}
	rep := Compute(records, Thresholds{})

	if len(rep.Peaks) != 2 {
		t.Fatalf("got %d peaks, want 2 (days six and seven)", len(rep.Peaks))
	}
	if rep.Peaks[0].Km7d != 210 {
		t.Errorf("worst peak = %v, want 210", rep.Peaks[0].Km7d)
	}
	if rep.Peaks[1].Km7d != 180 {
		t.Errorf("second peak = %v, want 180", rep.Peaks[1].Km7d)
	}
}

func TestCompute_PeaksCappedAtThree(t *testing.T) {
	var records []model.WorkloadRecord
	for i := 0; i < 14; i++ {
		records = append(records, rec("Ray", i, 40))
	}
	rep := Compute(records, Thresholds{})
	if len(rep.Peaks) != 3 {
		t.Errorf("got %d peaks, want cap of 3", len(rep.Peaks))
	}
}

func TestCompute_AlertedSorted(t *testing.T) {
	records := []model.WorkloadRecord{
		rec("Zora", 0, 20), rec("Zora", 1, 20), rec("Zora", 2, 20),
		rec("Ada", 0, 20), rec("Ada", 1, 20), rec("Ada", 2, 20),
	}
	rep := Compute(records, Thresholds{})
	if len(rep.Alerted) != 2 || rep.Alerted[0] != "Ada" || rep.Alerted[1] != "Zora" {
		t.Errorf("Alerted = %v, want sorted [Ada Zora]", rep.Alerted)
	}
}

func TestCompute_QuietLogIsClean(t *testing.T) {
	records := []model.WorkloadRecord{
		rec("Lumi", 0, 10), rec("Lumi", 3, 12),
	}
	rep := Compute(records, Thresholds{})
	if len(rep.Streaks)+len(rep.Shares)+len(rep.Peaks) != 0 {
		t.Errorf("quiet log produced flags: %+v", rep)
	}
	if len(rep.Alerted) != 0 {
		t.Errorf("Alerted = %v, want empty", rep.Alerted)
	}
}
