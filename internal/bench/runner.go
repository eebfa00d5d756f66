// Package bench runs a solver repeatedly on one instance and aggregates
// the outcomes.
package bench

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/maelqr/ecosched/core/logger"
	coremetrics "github.com/maelqr/ecosched/core/metrics"
	"github.com/maelqr/ecosched/core/optim"
	"github.com/maelqr/ecosched/core/shop"
)

// Runner executes Runs independent solver runs on clones of Instance.
// New builds a fresh searcher per run; the seed argument lets randomized
// heuristics differ between runs while staying reproducible. A zero
// BaseSeed draws one clock base for the whole campaign.
type Runner struct {
	Instance  *shop.Instance
	Runs      int
	BaseSeed  int64
	Heuristic string
	Strategy  string
	New       func(seed int64) (optim.Searcher, error)
	Sink      coremetrics.MetricsSink
	Log       logger.Logger
}

// RunResult is the outcome of one run.
type RunResult struct {
	ID         string
	Objective  float64
	Energy     int
	Makespan   int
	Feasible   bool
	Iterations int
	Duration   time.Duration
}

// Summary aggregates a whole campaign. The statistics cover feasible runs
// only; Best is +Inf when every run came back infeasible.
type Summary struct {
	Instance string
	Runs     int
	Feasible int
	Best     float64
	Mean     float64
	StdDev   float64
	Median   float64
	Results  []RunResult
}

// Run executes the campaign. It stops early when ctx is canceled, returning
// the context error.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if r.Runs < 1 {
		return Summary{}, fmt.Errorf("bench: runs must be positive, got %d", r.Runs)
	}
	if r.New == nil {
		return Summary{}, fmt.Errorf("bench: nil searcher factory")
	}
	log := r.Log
	if log == nil {
		log = logger.Nop{}
	}
	sink := r.Sink
	if sink == nil {
		sink = coremetrics.NopSink{}
	}

	// Resolve a zero base against the clock once, up front: searcher
	// factories treat a zero seed as "use the clock", and per-run seeds
	// must never trip that fallback mid-campaign.
	base := r.BaseSeed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	sum := Summary{Instance: r.Instance.Name(), Runs: r.Runs}
	objectives := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		if err := ctx.Err(); err != nil {
			return Summary{}, fmt.Errorf("bench: run %d: %w", i, err)
		}

		searcher, err := r.New(base + int64(i))
		if err != nil {
			return Summary{}, fmt.Errorf("bench: run %d: %w", i, err)
		}
		res, err := searcher.Run(r.Instance.Clone())
		if err != nil {
			return Summary{}, fmt.Errorf("bench: run %d: %w", i, err)
		}

		run := RunResult{
			ID:         uuid.NewString(),
			Objective:  res.Objective,
			Energy:     res.Solution.TotalEnergy(),
			Makespan:   res.Solution.Cmax(),
			Feasible:   res.Feasible,
			Iterations: res.Iterations,
			Duration:   res.Duration,
		}
		sum.Results = append(sum.Results, run)
		if run.Feasible {
			sum.Feasible++
			objectives = append(objectives, run.Objective)
		}
		log.Debugw("bench run finished", map[string]any{
			"run": i, "id": run.ID, "objective": run.Objective, "feasible": run.Feasible,
		})

		if err := sink.RecordSolveResult([]coremetrics.SolveResult{{
			RunID:      run.ID,
			Instance:   sum.Instance,
			Heuristic:  r.Heuristic,
			Strategy:   r.Strategy,
			Objective:  run.Objective,
			Energy:     run.Energy,
			Makespan:   run.Makespan,
			Feasible:   run.Feasible,
			Iterations: run.Iterations,
			Duration:   run.Duration,
			Time:       time.Now(),
		}}); err != nil {
			log.Warnf("record run: %v", err)
		}
	}

	sum.Best = math.Inf(1)
	if len(objectives) > 0 {
		sort.Float64s(objectives)
		sum.Best = objectives[0]
		sum.Mean = stat.Mean(objectives, nil)
		sum.StdDev = stat.StdDev(objectives, nil)
		sum.Median = stat.Quantile(0.5, stat.Empirical, objectives, nil)
	}

	if rec, ok := sink.(coremetrics.BenchSummaryRecorder); ok {
		if err := rec.RecordBenchSummary(coremetrics.BenchSummaryEvent{
			Instance:  sum.Instance,
			Heuristic: r.Heuristic,
			Runs:      sum.Runs,
			Feasible:  sum.Feasible,
			Best:      sum.Best,
			Mean:      sum.Mean,
			StdDev:    sum.StdDev,
			Median:    sum.Median,
			Time:      time.Now(),
		}); err != nil {
			log.Warnf("record summary: %v", err)
		}
	}
	log.Infof("bench finished: %d/%d feasible, best %.3f", sum.Feasible, sum.Runs, sum.Best)
	return sum, nil
}
