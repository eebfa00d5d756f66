package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/maelqr/ecosched/core/metrics"
)

func TestInfluxSink_RecordSolveResult(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	rec := coremetrics.SolveResult{
		RunID:      "run-1",
		Instance:   "inst1",
		Heuristic:  "greedy",
		Strategy:   "first",
		Objective:  42.5,
		Energy:     80,
		Makespan:   15,
		Feasible:   true,
		Iterations: 3,
		Duration:   1500 * time.Millisecond,
		Time:       now,
	}

	if err := sink.RecordSolveResult([]coremetrics.SolveResult{rec}); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("solve_run").
		AddTag("run_id", "run-1").
		AddTag("instance", "inst1").
		AddTag("heuristic", "greedy").
		AddTag("strategy", "first").
		AddTag("feasible", "true").
		AddField("objective", 42.5).
		AddField("energy", 80).
		AddField("makespan", 15).
		AddField("iterations", 3).
		AddField("duration_ms", int64(1500)).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL+"/api/v2/write", "tok", "org", "bucket")
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
