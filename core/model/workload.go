package model

import (
	"fmt"
	"time"
)

// WorkloadRecord is one training-log entry: a distance run by a dog on a
// calendar day. Multiple records for the same dog and day are summed when
// fatigue is computed.
type WorkloadRecord struct {
	Dog        string
	Date       time.Time
	DistanceKm float64
}

// Validate checks that the record is usable.
func (r WorkloadRecord) Validate() error {
	if r.Dog == "" {
		return fmt.Errorf("dog name is required")
	}
	if r.DistanceKm < 0 {
		return fmt.Errorf("distance must be non-negative, got %.2f", r.DistanceKm)
	}
	return nil
}

// Day truncates t to midnight UTC so records and planning dates compare on
// calendar days regardless of the wall-clock time they carry.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FatigueMetrics holds the windowed workload aggregates and the resulting
// fatigue score for one dog at a fixed target date. Lower fatigue means
// fresher. The values are recomputed per call and never persisted.
type FatigueMetrics struct {
	Dog        string
	Km3d       float64
	Km7d       float64
	LastDayKm  float64
	HardStreak int
	Fatigue    float64
}
