// Package report computes workload red flags over a training-log range:
// hard-day streak blocks, hard-day share and 7-day rolling peaks. It backs
// the rest-planning review and is independent of team assembly.
package report

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/kennelops/kennelplan/core/model"
)

// Thresholds defines when workload patterns are flagged.
type Thresholds struct {
	// HardDayKm marks a daily total at or above this distance as hard.
	HardDayKm float64 `json:"hard_day_km"`
	// StreakDays flags consecutive hard-day blocks of at least this length.
	StreakDays int `json:"streak_days"`
	// HardSharePct flags dogs whose share of hard days reaches this percentage.
	HardSharePct float64 `json:"hard_share_pct"`
	// WeekKm flags 7-day rolling totals at or above this distance.
	WeekKm float64 `json:"week_km"`
}

// SetDefaults fills zero-valued thresholds.
func (t *Thresholds) SetDefaults() {
	if t.HardDayKm <= 0 {
		t.HardDayKm = 18
	}
	if t.StreakDays <= 0 {
		t.StreakDays = 3
	}
	if t.HardSharePct <= 0 {
		t.HardSharePct = 40
	}
	if t.WeekKm <= 0 {
		t.WeekKm = 180
	}
}

// StreakBlock is a run of consecutive hard days for one dog.
type StreakBlock struct {
	Dog   string    `json:"dog"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`
	AvgKm float64   `json:"avg_km"`
	MaxKm float64   `json:"max_km"`
}

// ShareStat summarises how much of a dog's active days were hard.
type ShareStat struct {
	Dog          string  `json:"dog"`
	Days         int     `json:"days"`
	HardDays     int     `json:"hard_days"`
	TotalKm      float64 `json:"total_km"`
	HardSharePct float64 `json:"hard_share_pct"`
}

// RollingPeak is a 7-day rolling total that crossed the weekly threshold.
type RollingPeak struct {
	Dog  string    `json:"dog"`
	Date time.Time `json:"date"`
	Km7d float64   `json:"km_7d"`
}

// Report bundles all flagged findings. Alerted lists every dog that
// triggered at least one flag, sorted by name.
type Report struct {
	Streaks []StreakBlock `json:"streaks"`
	Shares  []ShareStat   `json:"shares"`
	Peaks   []RollingPeak `json:"peaks"`
	Alerted []string      `json:"alerted"`
}

// Compute evaluates the thresholds over the records.
func Compute(records []model.WorkloadRecord, thr Thresholds) Report {
	thr.SetDefaults()

	daily := make(map[string]map[time.Time]float64)
	var order []string
	for _, r := range records {
		d := model.Day(r.Date)
		m, ok := daily[r.Dog]
		if !ok {
			m = make(map[time.Time]float64)
			daily[r.Dog] = m
			order = append(order, r.Dog)
		}
		m[d] += r.DistanceKm
	}

	var rep Report
	alerted := make(map[string]struct{})
	for _, dog := range order {
		days := sortedDays(daily[dog])
		totals := daily[dog]

		blocks := streakBlocks(dog, days, totals, thr)
		if len(blocks) > 0 {
			rep.Streaks = append(rep.Streaks, blocks...)
			alerted[dog] = struct{}{}
		}

		if share, flagged := shareStat(dog, days, totals, thr); flagged {
			rep.Shares = append(rep.Shares, share)
			alerted[dog] = struct{}{}
		}

		peaks := rollingPeaks(dog, days, totals, thr)
		if len(peaks) > 0 {
			rep.Peaks = append(rep.Peaks, peaks...)
			alerted[dog] = struct{}{}
		}
	}

	rep.Alerted = make([]string, 0, len(alerted))
	for dog := range alerted {
		rep.Alerted = append(rep.Alerted, dog)
	}
	sort.Strings(rep.Alerted)
	return rep
}

// streakBlocks finds runs of consecutive calendar hard days of at least the
// threshold length.
func streakBlocks(dog string, days []time.Time, totals map[time.Time]float64, thr Thresholds) []StreakBlock {
	var blocks []StreakBlock
	var run []time.Time
	flush := func() {
		if len(run) >= thr.StreakDays {
			kms := make([]float64, len(run))
			maxKm := 0.0
			for i, d := range run {
				kms[i] = totals[d]
				if kms[i] > maxKm {
					maxKm = kms[i]
				}
			}
			blocks = append(blocks, StreakBlock{
				Dog:   dog,
				Start: run[0],
				End:   run[len(run)-1],
				Days:  len(run),
				AvgKm: stat.Mean(kms, nil),
				MaxKm: maxKm,
			})
		}
		run = nil
	}
	for _, d := range days {
		if totals[d] < thr.HardDayKm {
			flush()
			continue
		}
		if len(run) > 0 && !d.Equal(run[len(run)-1].AddDate(0, 0, 1)) {
			flush()
		}
		run = append(run, d)
	}
	flush()
	return blocks
}

func shareStat(dog string, days []time.Time, totals map[time.Time]float64, thr Thresholds) (ShareStat, bool) {
	if len(days) == 0 {
		return ShareStat{}, false
	}
	s := ShareStat{Dog: dog, Days: len(days)}
	for _, d := range days {
		s.TotalKm += totals[d]
		if totals[d] >= thr.HardDayKm {
			s.HardDays++
		}
	}
	s.HardSharePct = float64(s.HardDays) / float64(s.Days) * 100
	return s, s.HardSharePct >= thr.HardSharePct
}

// rollingPeaks evaluates the 7-day rolling total at each active day and
// keeps the three worst crossings per dog.
func rollingPeaks(dog string, days []time.Time, totals map[time.Time]float64, thr Thresholds) []RollingPeak {
	var peaks []RollingPeak
	for _, d := range days {
		sum := 0.0
		for i := 0; i < 7; i++ {
			sum += totals[d.AddDate(0, 0, -i)]
		}
		if sum >= thr.WeekKm {
			peaks = append(peaks, RollingPeak{Dog: dog, Date: d, Km7d: sum})
		}
	}
	sort.SliceStable(peaks, func(i, j int) bool { return peaks[i].Km7d > peaks[j].Km7d })
	if len(peaks) > 3 {
		peaks = peaks[:3]
	}
	return peaks
}

func sortedDays(totals map[time.Time]float64) []time.Time {
	out := make([]time.Time, 0, len(totals))
	for d := range totals {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
