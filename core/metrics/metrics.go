package metrics

import "time"

// SolveResult represents one completed solver run to be recorded.
type SolveResult struct {
	RunID      string
	Instance   string
	Heuristic  string
	Strategy   string
	Objective  float64
	Energy     int
	Makespan   int
	Feasible   bool
	Iterations int
	Duration   time.Duration
	Time       time.Time
}

// MetricsSink records solver runs for observability purposes.
type MetricsSink interface {
	RecordSolveResult(results []SolveResult) error
}

// MachineUsageEvent is a per-machine snapshot of a finished schedule.
type MachineUsageEvent struct {
	RunID       string
	Instance    string
	MachineID   int
	Operations  int
	WorkingTime int
	Energy      int
	Time        time.Time
}

// MachineUsageRecorder is implemented by sinks able to record machine usage.
type MachineUsageRecorder interface {
	RecordMachineUsage(evs []MachineUsageEvent) error
}

// BenchSummaryEvent aggregates the outcome of a benchmark campaign.
type BenchSummaryEvent struct {
	Instance  string
	Heuristic string
	Runs      int
	Feasible  int
	Best      float64
	Mean      float64
	StdDev    float64
	Median    float64
	Time      time.Time
}

// BenchSummaryRecorder records benchmark summaries.
type BenchSummaryRecorder interface {
	RecordBenchSummary(ev BenchSummaryEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordSolveResult([]SolveResult) error       { return nil }
func (NopSink) RecordMachineUsage([]MachineUsageEvent) error { return nil }
func (NopSink) RecordBenchSummary(BenchSummaryEvent) error   { return nil }
