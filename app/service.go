// Package app wires the storage collaborator, the planning core and the
// output adapters into one service.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kennelops/kennelplan/api"
	"github.com/kennelops/kennelplan/config"
	"github.com/kennelops/kennelplan/core/batch"
	"github.com/kennelops/kennelplan/core/fatigue"
	coremetrics "github.com/kennelops/kennelplan/core/metrics"
	"github.com/kennelops/kennelplan/core/model"
	"github.com/kennelops/kennelplan/core/planner"
	"github.com/kennelops/kennelplan/core/report"
	"github.com/kennelops/kennelplan/infra/logger"
	"github.com/kennelops/kennelplan/infra/metrics"
	"github.com/kennelops/kennelplan/infra/mqtt"
	"github.com/kennelops/kennelplan/infra/storage"
)

// Service orchestrates snapshot loading, planning and result delivery.
type Service struct {
	cfg   *config.Config
	store *storage.Store
	sink  coremetrics.Sink
	pub   mqtt.Publisher
	log   logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	log := logger.New("service")

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			if cerr := store.Close(); cerr != nil {
				log.Errorf("store close: %v", cerr)
			}
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	var pub mqtt.Publisher
	if cfg.MQTT.Enabled {
		pub, err = mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			if cerr := store.Close(); cerr != nil {
				log.Errorf("store close: %v", cerr)
			}
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
	}

	return &Service{cfg: cfg, store: store, sink: sink, pub: pub, log: log}, nil
}

// Store exposes the storage collaborator for data-entry commands.
func (s *Service) Store() *storage.Store { return s.store }

// Close releases the store and the publisher.
func (s *Service) Close() error {
	if s.pub != nil {
		s.pub.Close()
	}
	return s.store.Close()
}

// engine loads a fresh snapshot covering the fatigue lookback window ending
// at day and builds a planner over it. Each call gets its own snapshot, so
// concurrent invocations do not share state.
func (s *Service) engine(day time.Time, fcfg fatigue.Config) (*planner.Engine, error) {
	fcfg.SetDefaults()
	lookback := fcfg.LookbackDays7
	if fcfg.LookbackDays3 > lookback {
		lookback = fcfg.LookbackDays3
	}
	start := model.Day(day).AddDate(0, 0, -lookback)

	profiles, err := s.store.Profiles()
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	relations, err := s.store.Relations()
	if err != nil {
		return nil, fmt.Errorf("load relations: %w", err)
	}
	records, err := s.store.Workload(start, day)
	if err != nil {
		return nil, fmt.Errorf("load workload: %w", err)
	}
	return planner.NewEngine(profiles, relations, records, s.cfg.Scoring, s.log), nil
}

// Fatigue computes per-dog fatigue metrics for day.
func (s *Service) Fatigue(day time.Time) ([]model.FatigueMetrics, error) {
	eng, err := s.engine(day, s.cfg.Fatigue)
	if err != nil {
		return nil, err
	}
	return eng.Fatigue(day, s.cfg.Fatigue), nil
}

// Suggestions builds ranked team suggestions for one request.
func (s *Service) Suggestions(req planner.Request) ([]model.TeamSuggestion, error) {
	req.Fatigue = s.cfg.Fatigue
	eng, err := s.engine(req.Day, req.Fatigue)
	if err != nil {
		return nil, err
	}
	suggestions, err := eng.Suggestions(req)
	if err != nil {
		return nil, err
	}

	ev := coremetrics.SuggestionEvent{
		Day:         model.Day(req.Day),
		Size:        req.Size,
		Suggestions: len(suggestions),
	}
	if len(suggestions) > 0 {
		ev.BestScore = suggestions[0].Score
		ev.ConflictOK = suggestions[0].Breakdown.ConflictOK
	}
	if err := s.sink.RecordSuggestions(ev); err != nil {
		s.log.Warnf("record suggestions: %v", err)
	}
	return suggestions, nil
}

// PoolStats summarises the filtered candidate pool for one request.
func (s *Service) PoolStats(req planner.Request) (model.PoolStats, error) {
	req.Fatigue = s.cfg.Fatigue
	eng, err := s.engine(req.Day, req.Fatigue)
	if err != nil {
		return model.PoolStats{}, err
	}
	return eng.PoolStats(req), nil
}

// Batch builds multiple non-overlapping teams and, when the request falls
// short, attaches pool-level reasons via UnmetReasons. The result is pushed
// to the metrics sink and the MQTT publisher when configured.
func (s *Service) Batch(req batch.Request) (model.BatchResult, []string, error) {
	req.Fatigue = s.cfg.Fatigue
	eng, err := s.engine(req.Day, req.Fatigue)
	if err != nil {
		return model.BatchResult{}, nil, err
	}

	started := time.Now()
	sched := batch.Scheduler{Engine: eng, Log: s.log}
	res, err := sched.Build(req)
	if err != nil {
		return model.BatchResult{}, nil, err
	}
	res.RunID = uuid.NewString()

	var reasons []string
	if len(res.Teams) < req.TeamsCount {
		plans, perr := planner.PlansForSize(req.Size)
		if perr == nil {
			pool := eng.PoolStats(planner.Request{
				Day:           req.Day,
				Size:          req.Size,
				PlannedKm:     req.PlannedKm,
				EnforceAgeCap: req.EnforceAgeCap,
				Fatigue:       req.Fatigue,
				Candidates:    req.Dogs,
			})
			reasons = planner.UnmetReasons(pool, plans, req.TeamsCount)
		}
	}

	used := 0
	for _, t := range res.Teams {
		used += len(t.Dogs)
	}
	if err := s.sink.RecordBatch(coremetrics.BatchEvent{
		RunID:         res.RunID,
		Day:           res.Day,
		Size:          req.Size,
		Requested:     req.TeamsCount,
		Built:         len(res.Teams),
		DogsUsed:      used,
		DogsRemaining: len(res.Remaining),
		Relaxed:       res.Relaxed,
		Duration:      time.Since(started),
	}); err != nil {
		s.log.Warnf("record batch: %v", err)
	}

	if s.pub != nil {
		if err := s.pub.PublishBatch(res); err != nil {
			s.log.Errorf("publish batch: %v", err)
		}
	}
	return res, reasons, nil
}

// RedFlags evaluates workload alerts over [start, end].
func (s *Service) RedFlags(start, end time.Time) (report.Report, error) {
	records, err := s.store.Workload(start, end)
	if err != nil {
		return report.Report{}, fmt.Errorf("load workload: %w", err)
	}
	return report.Compute(records, s.cfg.Report), nil
}

// Serve runs the HTTP API and, when enabled, the Prometheus endpoint until
// the context is canceled.
func (s *Service) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Serve(ctx, s.cfg.API.Addr, api.NewMux(s))
	})
	if s.cfg.Metrics.PrometheusEnabled {
		g.Go(func() error {
			return metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort)
		})
	}
	return g.Wait()
}
