package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kennelops/kennelplan/core/metrics"
	"github.com/kennelops/kennelplan/infra/logger"
)

// InfluxSink writes planning events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.Sink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSuggestions writes one point per suggestion request.
func (s *InfluxSink) RecordSuggestions(ev coremetrics.SuggestionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("suggestion_request").
		AddTag("team_size", strconv.Itoa(ev.Size)).
		AddTag("conflict_ok", strconv.FormatBool(ev.ConflictOK)).
		AddField("suggestions", ev.Suggestions).
		AddField("best_score", ev.BestScore).
		SetTime(ev.Day)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordBatch writes one point per batch run.
func (s *InfluxSink) RecordBatch(ev coremetrics.BatchEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("batch_run").
		AddTag("team_size", strconv.Itoa(ev.Size)).
		AddTag("relaxed", strconv.FormatBool(ev.Relaxed)).
		AddTag("run_id", ev.RunID).
		AddField("requested", ev.Requested).
		AddField("built", ev.Built).
		AddField("dogs_used", ev.DogsUsed).
		AddField("dogs_remaining", ev.DogsRemaining).
		AddField("duration_ms", ev.Duration.Milliseconds()).
		SetTime(ev.Day)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
