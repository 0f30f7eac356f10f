// Package api exposes planning results over HTTP for dashboards and other
// presentation layers. Rendering stays out of the core; these handlers only
// serialise what the service computes.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kennelops/kennelplan/core/batch"
	"github.com/kennelops/kennelplan/core/model"
	"github.com/kennelops/kennelplan/core/planner"
	"github.com/kennelops/kennelplan/core/report"
	"github.com/kennelops/kennelplan/infra/logger"
)

// Service is the planning surface the handlers expose. Implemented by
// app.Service.
type Service interface {
	Fatigue(day time.Time) ([]model.FatigueMetrics, error)
	Suggestions(req planner.Request) ([]model.TeamSuggestion, error)
	PoolStats(req planner.Request) (model.PoolStats, error)
	Batch(req batch.Request) (model.BatchResult, []string, error)
	RedFlags(start, end time.Time) (report.Report, error)
}

// NewMux routes all planning endpoints.
func NewMux(svc Service) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/fatigue", NewFatigueHandler(svc))
	mux.Handle("/api/suggestions", NewSuggestionsHandler(svc))
	mux.Handle("/api/pool", NewPoolHandler(svc))
	mux.Handle("/api/batch", NewBatchHandler(svc))
	mux.Handle("/api/redflags", NewRedFlagsHandler(svc))
	return mux
}

// Serve runs the HTTP server until the context is canceled.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.New("api").Errorf("shutdown: %v", err)
		}
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// NewFatigueHandler serves GET /api/fatigue?day=YYYY-MM-DD.
func NewFatigueHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		day, err := queryDay(r, "day")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		metrics, err := svc.Fatigue(day)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, metrics)
	})
}

// NewSuggestionsHandler serves GET /api/suggestions with day, size,
// planned_km, keep_pairs and age_cap query parameters.
func NewSuggestionsHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		req, err := plannerRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		suggestions, err := svc.Suggestions(req)
		if err != nil {
			status := http.StatusInternalServerError
			if errorsIsUnsupportedSize(err) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}
		writeJSON(w, suggestions)
	})
}

// NewPoolHandler serves GET /api/pool with the same parameters as the
// suggestions endpoint.
func NewPoolHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		req, err := plannerRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		stats, err := svc.PoolStats(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, stats)
	})
}

type batchResponse struct {
	model.BatchResult
	Reasons []string `json:"reasons,omitempty"`
}

// NewBatchHandler serves GET /api/batch; teams holds the requested count.
func NewBatchHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		preq, err := plannerRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		teams, err := queryInt(r, "teams", 1)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, reasons, err := svc.Batch(batch.Request{
			Day:           preq.Day,
			Size:          preq.Size,
			TeamsCount:    teams,
			PlannedKm:     preq.PlannedKm,
			KeepPairsSoft: preq.KeepPairsSoft,
			EnforceAgeCap: preq.EnforceAgeCap,
		})
		if err != nil {
			status := http.StatusInternalServerError
			if errorsIsUnsupportedSize(err) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}
		writeJSON(w, batchResponse{BatchResult: res, Reasons: reasons})
	})
}

// NewRedFlagsHandler serves GET /api/redflags?start=...&end=...
func NewRedFlagsHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		start, err := queryDay(r, "start")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		end, err := queryDay(r, "end")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rep, err := svc.RedFlags(start, end)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, rep)
	})
}

func plannerRequest(r *http.Request) (planner.Request, error) {
	day, err := queryDay(r, "day")
	if err != nil {
		return planner.Request{}, err
	}
	size, err := queryInt(r, "size", 6)
	if err != nil {
		return planner.Request{}, err
	}
	km := 0.0
	if s := r.URL.Query().Get("planned_km"); s != "" {
		km, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return planner.Request{}, fmt.Errorf("bad planned_km %q", s)
		}
	}
	return planner.Request{
		Day:           day,
		Size:          size,
		PlannedKm:     km,
		KeepPairsSoft: queryBool(r, "keep_pairs", true),
		EnforceAgeCap: queryBool(r, "age_cap", true),
	}, nil
}

func queryDay(r *http.Request, key string) (time.Time, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return model.Day(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad %s %q: expected YYYY-MM-DD", key, s)
	}
	return t, nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", key, s)
	}
	return v, nil
}

func queryBool(r *http.Request, key string, def bool) bool {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func errorsIsUnsupportedSize(err error) bool {
	return errors.Is(err, planner.ErrUnsupportedSize)
}
