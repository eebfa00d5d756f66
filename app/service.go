// Package app assembles the solver from configuration: logger, metrics
// sinks, heuristics and search strategy.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/maelqr/ecosched/config"
	coremetrics "github.com/maelqr/ecosched/core/metrics"
	"github.com/maelqr/ecosched/core/optim"
	"github.com/maelqr/ecosched/core/shop"
	"github.com/maelqr/ecosched/infra/logger"
	"github.com/maelqr/ecosched/infra/metrics"
	"github.com/maelqr/ecosched/infra/store"
	"github.com/maelqr/ecosched/internal/bench"
	"github.com/maelqr/ecosched/pkg/export"
)

// Service holds the configured solver pipeline.
type Service struct {
	cfg  *config.Config
	log  logger.Logger
	sink coremetrics.MetricsSink
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	return &Service{cfg: cfg, log: logger.New("service"), sink: sink}, nil
}

// StartMetrics starts the Prometheus exposition server when an address is
// configured. It returns immediately; the server stops with ctx.
func (s *Service) StartMetrics(ctx context.Context) {
	addr := s.cfg.Metrics.PrometheusAddr
	if addr == "" {
		return
	}
	go func() {
		if err := metrics.StartPromServer(ctx, addr); err != nil {
			s.log.Errorf("prom server: %v", err)
		}
	}()
}

// Searcher builds the configured search pipeline. The seed feeds the
// randomized heuristic; a zero seed falls back to the clock.
func (s *Service) Searcher(seed int64) (optim.Searcher, error) {
	sc := s.cfg.Solver
	params := optim.Params{
		Alpha:      sc.Alpha,
		Beta:       sc.Beta,
		AlphaLocal: sc.AlphaLocal,
		BetaLocal:  sc.BetaLocal,
	}

	var init optim.Constructive
	switch sc.Heuristic {
	case "greedy":
		init = optim.NewGreedy(params, logger.New("greedy"))
	case "random":
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		r, err := optim.NewRandom(params, rand.New(rand.NewSource(seed)), logger.New("random"))
		if err != nil {
			return nil, err
		}
		init = r
	default:
		return nil, fmt.Errorf("unknown heuristic %s", sc.Heuristic)
	}

	var nbs []optim.Neighborhood
	for _, name := range sc.Neighborhoods {
		switch name {
		case "move":
			nbs = append(nbs, optim.NewOperationMove(logger.New("move")))
		case "swap":
			nbs = append(nbs, optim.NewOperationSwap(logger.New("swap")))
		default:
			return nil, fmt.Errorf("unknown neighborhood %s", name)
		}
	}

	switch sc.Strategy {
	case "none":
		return optim.ConstructiveSearch{Init: init}, nil
	case "first":
		return optim.NewFirstImprovement(init, nbs[0], logger.New("first-improvement")), nil
	case "best":
		return optim.NewBestImprovement(init, logger.New("best-improvement"), nbs...), nil
	default:
		return nil, fmt.Errorf("unknown strategy %s", sc.Strategy)
	}
}

// Solve loads the instance folder, runs the configured searcher once,
// records the outcome and writes the schedule to the export directory.
func (s *Service) Solve(ctx context.Context, folder string) (optim.SearchResult, error) {
	inst, err := store.LoadInstance(folder)
	if err != nil {
		return optim.SearchResult{}, fmt.Errorf("load instance: %w", err)
	}
	s.log.Infof("solving %s", inst)

	searcher, err := s.Searcher(s.cfg.Solver.Seed)
	if err != nil {
		return optim.SearchResult{}, err
	}
	res, err := searcher.Run(inst)
	if err != nil {
		return optim.SearchResult{}, fmt.Errorf("search: %w", err)
	}
	s.record(res)

	if err := s.write(res.Solution); err != nil {
		return res, err
	}
	s.log.Infof("solved %s: objective %.3f, feasible %t", inst.Name(), res.Objective, res.Feasible)
	return res, nil
}

// Bench runs the configured searcher repeatedly on the instance folder and
// returns the aggregated campaign.
func (s *Service) Bench(ctx context.Context, folder string) (bench.Summary, error) {
	inst, err := store.LoadInstance(folder)
	if err != nil {
		return bench.Summary{}, fmt.Errorf("load instance: %w", err)
	}
	runner := &bench.Runner{
		Instance:  inst,
		Runs:      s.cfg.Bench.Runs,
		BaseSeed:  s.cfg.Bench.Seed,
		Heuristic: s.cfg.Solver.Heuristic,
		Strategy:  s.cfg.Solver.Strategy,
		New:       s.Searcher,
		Sink:      s.sink,
		Log:       logger.New("bench"),
	}
	return runner.Run(ctx)
}

// record sends the run and the machine usage snapshots to the metrics sink.
func (s *Service) record(res optim.SearchResult) {
	inst := res.Solution.Instance()
	now := time.Now()
	runID := uuid.NewString()

	if err := s.sink.RecordSolveResult([]coremetrics.SolveResult{{
		RunID:      runID,
		Instance:   inst.Name(),
		Heuristic:  s.cfg.Solver.Heuristic,
		Strategy:   s.cfg.Solver.Strategy,
		Objective:  res.Objective,
		Energy:     res.Solution.TotalEnergy(),
		Makespan:   res.Solution.Cmax(),
		Feasible:   res.Feasible,
		Iterations: res.Iterations,
		Duration:   res.Duration,
		Time:       now,
	}}); err != nil {
		s.log.Warnf("record run: %v", err)
	}

	rec, ok := s.sink.(coremetrics.MachineUsageRecorder)
	if !ok {
		return
	}
	var evs []coremetrics.MachineUsageEvent
	for _, m := range inst.Machines() {
		evs = append(evs, coremetrics.MachineUsageEvent{
			RunID:       runID,
			Instance:    inst.Name(),
			MachineID:   m.ID(),
			Operations:  len(m.ScheduledOperations()),
			WorkingTime: m.WorkingTime(),
			Energy:      m.TotalEnergy(),
			Time:        now,
		})
	}
	if err := rec.RecordMachineUsage(evs); err != nil {
		s.log.Warnf("record machine usage: %v", err)
	}
}

// write persists the solution CSVs and the configured export rendition.
func (s *Service) write(sol *shop.Solution) error {
	dir := s.cfg.Export.Dir
	if err := store.SaveSolution(sol, dir); err != nil {
		return fmt.Errorf("save solution: %w", err)
	}

	plan := export.NewPlan(sol)
	name := sol.Instance().Name() + "_schedule." + s.cfg.Export.Format
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	defer f.Close()
	switch s.cfg.Export.Format {
	case "csv":
		err = export.WriteCSV(f, plan)
	default:
		err = export.WriteJSON(f, plan)
	}
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// Close releases resources held by the metrics sinks.
func (s *Service) Close() error {
	closeSink(s.sink)
	return nil
}

func closeSink(sink coremetrics.MetricsSink) {
	switch v := sink.(type) {
	case *coremetrics.MultiSink:
		for _, sub := range v.Sinks {
			closeSink(sub)
		}
	case interface{ Close() }:
		v.Close()
	}
}
