// Package metrics defines the observability contract for planning runs.
// Implementations live under infra/metrics.
package metrics

import "time"

// SuggestionEvent summarises one suggestion request.
type SuggestionEvent struct {
	Day         time.Time
	Size        int
	Suggestions int
	BestScore   float64
	ConflictOK  bool
}

// BatchEvent summarises one batch run.
type BatchEvent struct {
	RunID         string
	Day           time.Time
	Size          int
	Requested     int
	Built         int
	DogsUsed      int
	DogsRemaining int
	Relaxed       bool
	Duration      time.Duration
}

// Sink records planning events for observability purposes.
type Sink interface {
	RecordSuggestions(ev SuggestionEvent) error
	RecordBatch(ev BatchEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordSuggestions(SuggestionEvent) error { return nil }
func (NopSink) RecordBatch(BatchEvent) error            { return nil }

// MultiSink fans events out to several sinks, returning the first error.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink combines the given sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordSuggestions(ev SuggestionEvent) error {
	for _, s := range m.sinks {
		if err := s.RecordSuggestions(ev); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiSink) RecordBatch(ev BatchEvent) error {
	for _, s := range m.sinks {
		if err := s.RecordBatch(ev); err != nil {
			return err
		}
	}
	return nil
}
