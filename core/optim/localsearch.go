package optim

import (
	"errors"
	"time"

	"github.com/maelqr/ecosched/core/logger"
	"github.com/maelqr/ecosched/core/shop"
)

// SearchResult carries the outcome of one heuristic run.
type SearchResult struct {
	Solution   *shop.Solution
	Objective  float64
	Feasible   bool
	Iterations int
	Duration   time.Duration
}

// Searcher is the common contract of the search drivers.
type Searcher interface {
	Run(inst *shop.Instance) (SearchResult, error)
}

// ConstructiveSearch adapts a bare constructive heuristic to the Searcher
// contract, for callers that want the initial schedule without local search.
type ConstructiveSearch struct {
	Init Constructive
}

func (s ConstructiveSearch) Run(inst *shop.Instance) (SearchResult, error) {
	if s.Init == nil {
		return SearchResult{}, errors.New("optim: nil constructive heuristic")
	}
	start := time.Now()
	sol := s.Init.Build(inst)
	return SearchResult{
		Solution:  sol,
		Objective: sol.Evaluate(),
		Feasible:  sol.IsFeasible(),
		Duration:  time.Since(start),
	}, nil
}

// FirstImprovement runs the constructive heuristic once, then repeatedly
// accepts the first strictly improving neighbor until none exists. The
// objective sequence is strictly decreasing, so the loop terminates on any
// finite neighborhood.
type FirstImprovement struct {
	Init     Constructive
	Neighbor Neighborhood
	Log      logger.Logger
}

// NewFirstImprovement wires a first-improvement driver.
func NewFirstImprovement(init Constructive, nb Neighborhood, log logger.Logger) *FirstImprovement {
	if log == nil {
		log = logger.Nop{}
	}
	return &FirstImprovement{Init: init, Neighbor: nb, Log: log}
}

func (s *FirstImprovement) Run(inst *shop.Instance) (SearchResult, error) {
	if s.Init == nil || s.Neighbor == nil {
		return SearchResult{}, errors.New("optim: first improvement needs a constructive and a neighborhood")
	}
	start := time.Now()
	cur := s.Init.Build(inst)
	curEval := cur.Evaluate()
	s.Log.Infof("first improvement: initial %s", cur)

	iters := 0
	for {
		next := s.Neighbor.FirstBetterNeighbor(cur)
		nextEval := next.Evaluate()
		if nextEval >= curEval {
			break
		}
		cur, curEval = next, nextEval
		iters++
		s.Log.Debugw("accepted neighbor", map[string]any{"iteration": iters, "objective": curEval})
	}

	s.Log.Infof("first improvement: converged after %d iterations: %s", iters, cur)
	return SearchResult{
		Solution:   cur,
		Objective:  curEval,
		Feasible:   cur.IsFeasible(),
		Iterations: iters,
		Duration:   time.Since(start),
	}, nil
}

// BestImprovement runs the constructive heuristic once, then at each
// iteration takes the best candidate across all of its neighborhoods,
// accepting only strict improvement.
type BestImprovement struct {
	Init          Constructive
	Neighborhoods []Neighborhood
	Log           logger.Logger
}

// NewBestImprovement wires a best-improvement driver over one or more
// neighborhoods.
func NewBestImprovement(init Constructive, log logger.Logger, nbs ...Neighborhood) *BestImprovement {
	if log == nil {
		log = logger.Nop{}
	}
	return &BestImprovement{Init: init, Neighborhoods: nbs, Log: log}
}

func (s *BestImprovement) Run(inst *shop.Instance) (SearchResult, error) {
	if s.Init == nil || len(s.Neighborhoods) == 0 {
		return SearchResult{}, errors.New("optim: best improvement needs a constructive and at least one neighborhood")
	}
	start := time.Now()
	cur := s.Init.Build(inst)
	curEval := cur.Evaluate()
	s.Log.Infof("best improvement: initial %s", cur)

	iters := 0
	for {
		best := cur
		bestEval := curEval
		for _, nb := range s.Neighborhoods {
			cand := nb.BestNeighbor(cur)
			if e := cand.Evaluate(); e < bestEval {
				best, bestEval = cand, e
			}
		}
		if bestEval >= curEval {
			break
		}
		cur, curEval = best, bestEval
		iters++
		s.Log.Debugw("accepted neighbor", map[string]any{"iteration": iters, "objective": curEval})
	}

	s.Log.Infof("best improvement: converged after %d iterations: %s", iters, cur)
	return SearchResult{
		Solution:   cur,
		Objective:  curEval,
		Feasible:   cur.IsFeasible(),
		Iterations: iters,
		Duration:   time.Since(start),
	}, nil
}
