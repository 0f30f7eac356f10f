// Package fatigue turns raw daily workload into a comparable per-dog fatigue
// score for a planned run date. Scores rank dogs from freshest to most tired
// and feed the team assembler.
package fatigue

import (
	"sort"
	"time"

	"github.com/kennelops/kennelplan/core/model"
)

// Compute aggregates the workload records into per-dog metrics for a run on
// day. Records outside the lookback window are ignored; multiple records for
// the same dog and day are summed first. The result is sorted ascending by
// fatigue, ties preserving the order in which dogs first appear in records.
// Dogs with no workload in the window do not appear in the result.
func Compute(day time.Time, records []model.WorkloadRecord, cfg Config) []model.FatigueMetrics {
	cfg.SetDefaults()
	day = model.Day(day)

	// One daily total per dog and day.
	type dogDays map[time.Time]float64
	daily := make(map[string]dogDays)
	var order []string
	for _, r := range records {
		d := model.Day(r.Date)
		if d.After(day) {
			continue
		}
		m, ok := daily[r.Dog]
		if !ok {
			m = make(dogDays)
			daily[r.Dog] = m
			order = append(order, r.Dog)
		}
		m[d] += r.DistanceKm
	}

	out := make([]model.FatigueMetrics, 0, len(order))
	for _, dog := range order {
		m := daily[dog]
		fm := model.FatigueMetrics{Dog: dog}
		for i := 0; i < cfg.LookbackDays7; i++ {
			d := day.AddDate(0, 0, -i)
			km := m[d]
			fm.Km7d += km
			if i < cfg.LookbackDays3 {
				fm.Km3d += km
			}
			if i == 0 {
				fm.LastDayKm = km
			}
		}
		fm.HardStreak = hardStreak(m, day, cfg.HardDayThresholdKm)
		fm.Fatigue = cfg.score(fm)
		out = append(out, fm)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Fatigue < out[j].Fatigue })
	return out
}

// hardStreak walks backward from day counting consecutive days at or above
// the threshold. The first missing or sub-threshold day ends the streak.
func hardStreak(daily map[time.Time]float64, day time.Time, threshold float64) int {
	streak := 0
	for d := day; ; d = d.AddDate(0, 0, -1) {
		km, ok := daily[d]
		if !ok || km < threshold {
			return streak
		}
		streak++
	}
}
