package fatigue

import (
	"fmt"

	"github.com/kennelops/kennelplan/core/model"
)

// Config defines the fatigue-scoring parameters. The weights are policy
// knobs, not physics: they default to values tuned on historical kennel
// logs but can be overridden from configuration.
type Config struct {
	// HardDayThresholdKm marks a daily total at or above this distance as
	// a hard day.
	HardDayThresholdKm float64 `json:"hard_day_threshold_km"`
	// HardStreakDays is the streak length considered alarming by the
	// red-flag report. The scorer itself counts full streaks.
	HardStreakDays int `json:"hard_streak_days"`
	// LookbackDays3 and LookbackDays7 define the short and long
	// aggregation windows, both ending at the planned run date.
	LookbackDays3 int `json:"lookback_days_3"`
	LookbackDays7 int `json:"lookback_days_7"`

	// Score weights. Only streak length beyond the first hard day is
	// penalised.
	WeightKm7           float64 `json:"weight_km_7d"`
	WeightKm3           float64 `json:"weight_km_3d"`
	WeightLastDay       float64 `json:"weight_last_day"`
	StreakPenaltyPerDay float64 `json:"streak_penalty_per_day"`
}

// DefaultConfig returns the standard scoring parameters.
func DefaultConfig() Config {
	return Config{
		HardDayThresholdKm:  18.0,
		HardStreakDays:      3,
		LookbackDays3:       3,
		LookbackDays7:       7,
		WeightKm7:           0.55,
		WeightKm3:           0.35,
		WeightLastDay:       0.10,
		StreakPenaltyPerDay: 10.0,
	}
}

// SetDefaults fills zero-valued fields with the defaults. A config loaded
// from a partial file therefore behaves like DefaultConfig for the fields it
// does not mention.
func (c *Config) SetDefaults() {
	def := DefaultConfig()
	if c.HardDayThresholdKm <= 0 {
		c.HardDayThresholdKm = def.HardDayThresholdKm
	}
	if c.HardStreakDays <= 0 {
		c.HardStreakDays = def.HardStreakDays
	}
	if c.LookbackDays3 <= 0 {
		c.LookbackDays3 = def.LookbackDays3
	}
	if c.LookbackDays7 <= 0 {
		c.LookbackDays7 = def.LookbackDays7
	}
	if c.WeightKm7 == 0 && c.WeightKm3 == 0 && c.WeightLastDay == 0 {
		c.WeightKm7 = def.WeightKm7
		c.WeightKm3 = def.WeightKm3
		c.WeightLastDay = def.WeightLastDay
		c.StreakPenaltyPerDay = def.StreakPenaltyPerDay
	}
}

// Validate checks the window sizes.
func (c Config) Validate() error {
	if c.LookbackDays3 > c.LookbackDays7 {
		return fmt.Errorf("lookback_days_3 (%d) must not exceed lookback_days_7 (%d)", c.LookbackDays3, c.LookbackDays7)
	}
	return nil
}

func (c Config) score(m model.FatigueMetrics) float64 {
	streak := float64(m.HardStreak - 1)
	if streak < 0 {
		streak = 0
	}
	return c.WeightKm7*m.Km7d + c.WeightKm3*m.Km3d + c.WeightLastDay*m.LastDayKm + c.StreakPenaltyPerDay*streak
}
