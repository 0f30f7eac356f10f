package metrics

import (
	"errors"
	"testing"
)

type countingSink struct {
	suggestions int
	batches     int
	err         error
}

func (c *countingSink) RecordSuggestions(SuggestionEvent) error {
	c.suggestions++
	return c.err
}

func (c *countingSink) RecordBatch(BatchEvent) error {
	c.batches++
	return c.err
}

func TestMultiSink_FansOut(t *testing.T) {
	a, b := &countingSink{}, &countingSink{}
	m := NewMultiSink(a, b)

	if err := m.RecordSuggestions(SuggestionEvent{}); err != nil {
		t.Fatal(err)
	}
	if err := m.RecordBatch(BatchEvent{}); err != nil {
		t.Fatal(err)
	}
	if a.suggestions != 1 || b.suggestions != 1 || a.batches != 1 || b.batches != 1 {
		t.Errorf("events not fanned out: %+v %+v", a, b)
	}
}

func TestMultiSink_FirstErrorStops(t *testing.T) {
	a := &countingSink{err: errors.New("boom")}
	b := &countingSink{}
	m := NewMultiSink(a, b)

	if err := m.RecordBatch(BatchEvent{}); err == nil {
		t.Fatal("expected error")
	}
	if b.batches != 0 {
		t.Errorf("later sink called after error")
	}
}
