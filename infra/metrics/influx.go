package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/maelqr/ecosched/core/metrics"
	"github.com/maelqr/ecosched/infra/logger"
)

// InfluxSink writes solver runs to an InfluxDB instance using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
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

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
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

// RecordSolveResult writes each solver run as a point.
func (s *InfluxSink) RecordSolveResult(res []coremetrics.SolveResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range res {
		p := write.NewPointWithMeasurement("solve_run").
			AddTag("run_id", r.RunID).
			AddTag("instance", r.Instance).
			AddTag("heuristic", r.Heuristic).
			AddTag("strategy", r.Strategy).
			AddTag("feasible", strconv.FormatBool(r.Feasible)).
			AddField("objective", round3(r.Objective)).
			AddField("energy", r.Energy).
			AddField("makespan", r.Makespan).
			AddField("iterations", r.Iterations).
			AddField("duration_ms", r.Duration.Milliseconds()).
			SetTime(r.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordMachineUsage persists one point per machine snapshot.
func (s *InfluxSink) RecordMachineUsage(evs []coremetrics.MachineUsageEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, ev := range evs {
		p := write.NewPointWithMeasurement("machine_usage").
			AddTag("run_id", ev.RunID).
			AddTag("instance", ev.Instance).
			AddTag("machine_id", strconv.Itoa(ev.MachineID)).
			AddField("operations", ev.Operations).
			AddField("working_time", ev.WorkingTime).
			AddField("energy", ev.Energy).
			SetTime(ev.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordBenchSummary writes the aggregated outcome of a benchmark campaign.
func (s *InfluxSink) RecordBenchSummary(ev coremetrics.BenchSummaryEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("bench_summary").
		AddTag("instance", ev.Instance).
		AddTag("heuristic", ev.Heuristic).
		AddField("runs", ev.Runs).
		AddField("feasible", ev.Feasible).
		AddField("best", round3(ev.Best)).
		AddField("mean", round3(ev.Mean)).
		AddField("stddev", round3(ev.StdDev)).
		AddField("median", round3(ev.Median)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return math.Round(v*1000) / 1000
}
