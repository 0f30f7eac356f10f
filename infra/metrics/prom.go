package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kennelops/kennelplan/core/metrics"
)

// PromSink records planning events in Prometheus metrics.
type PromSink struct {
	suggestions *prometheus.CounterVec
	bestScore   *prometheus.HistogramVec
	batchRuns   *prometheus.CounterVec
	batchBuilt  *prometheus.HistogramVec
	shortfalls  *prometheus.CounterVec
}

// NewPromSink registers planning metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		suggestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_suggestion_requests_total",
			Help: "Total number of suggestion requests",
		}, []string{"team_size", "conflict_ok"}),
		bestScore: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planner_best_score",
			Help:    "Score of the best suggestion per request",
			Buckets: prometheus.ExponentialBuckets(10, 2, 12),
		}, []string{"team_size"}),
		batchRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_batch_runs_total",
			Help: "Total number of batch-planning runs",
		}, []string{"team_size", "relaxed"}),
		batchBuilt: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planner_batch_teams_built",
			Help:    "Teams built per batch run",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		}, []string{"team_size"}),
		shortfalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_batch_shortfalls_total",
			Help: "Batch runs that built fewer teams than requested",
		}, []string{"team_size"}),
	}
	for _, c := range []prometheus.Collector{s.suggestions, s.bestScore, s.batchRuns, s.batchBuilt, s.shortfalls} {
		if err := register(reg, c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func register(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			return err
		}
	}
	return nil
}

// RecordSuggestions increments the request counter and observes the best
// score when at least one suggestion was produced.
func (s *PromSink) RecordSuggestions(ev coremetrics.SuggestionEvent) error {
	size := strconv.Itoa(ev.Size)
	s.suggestions.WithLabelValues(size, strconv.FormatBool(ev.ConflictOK)).Inc()
	if ev.Suggestions > 0 {
		s.bestScore.WithLabelValues(size).Observe(ev.BestScore)
	}
	return nil
}

// RecordBatch records the outcome of one batch run.
func (s *PromSink) RecordBatch(ev coremetrics.BatchEvent) error {
	size := strconv.Itoa(ev.Size)
	s.batchRuns.WithLabelValues(size, strconv.FormatBool(ev.Relaxed)).Inc()
	s.batchBuilt.WithLabelValues(size).Observe(float64(ev.Built))
	if ev.Built < ev.Requested {
		s.shortfalls.WithLabelValues(size).Inc()
	}
	return nil
}
