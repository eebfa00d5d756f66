package optim

import (
	"fmt"

	"github.com/maelqr/ecosched/core/logger"
	"github.com/maelqr/ecosched/core/shop"
)

// OperationMove relocates one assigned operation to another of its
// admissible machines, repairing both machines by a full rebuild. The
// source machine is rebuilt with its remaining operations in original start
// order; the target machine is rebuilt with its full set ordered by
// (job, operation).
type OperationMove struct {
	Log logger.Logger
}

// NewOperationMove returns the move neighborhood.
func NewOperationMove(log logger.Logger) *OperationMove {
	if log == nil {
		log = logger.Nop{}
	}
	return &OperationMove{Log: log}
}

func (n *OperationMove) BestNeighbor(sol *shop.Solution) *shop.Solution {
	best := sol
	bestEval := sol.Evaluate()
	n.scan(sol, func(cand *shop.Solution) bool {
		if e := cand.Evaluate(); e < bestEval {
			best, bestEval = cand, e
		}
		return false
	})
	return best
}

func (n *OperationMove) FirstBetterNeighbor(sol *shop.Solution) *shop.Solution {
	ref := sol.Evaluate()
	found := sol
	n.scan(sol, func(cand *shop.Solution) bool {
		if cand.Evaluate() < ref {
			found = cand
			return true
		}
		return false
	})
	return found
}

// scan enumerates every (assigned operation, other admissible machine)
// pair in instance order and hands each feasible candidate to accept,
// stopping early when accept returns true.
func (n *OperationMove) scan(sol *shop.Solution, accept func(*shop.Solution) bool) {
	inst := sol.Instance()
	for _, src := range inst.Machines() {
		ops := append([]*shop.Operation(nil), src.ScheduledOperations()...)
		for _, op := range ops {
			for _, tgt := range inst.Machines() {
				if tgt.ID() == src.ID() {
					continue
				}
				if _, ok := op.Option(tgt.ID()); !ok {
					continue
				}
				cand := sol.Clone()
				if !n.apply(cand, op.Key(), src.ID(), tgt.ID()) {
					continue
				}
				if !cand.IsFeasible() {
					continue
				}
				if accept(cand) {
					return
				}
			}
		}
	}
}

// apply performs the move and repair on the candidate's own graph. A repair
// failure, including a machine contract panic, only discards the candidate.
func (n *OperationMove) apply(cand *shop.Solution, key shop.OpKey, srcID, tgtID int) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			n.Log.Debugw("move candidate discarded", map[string]any{"op": key, "target": tgtID, "panic": fmt.Sprint(r)})
			ok = false
		}
	}()

	inst := cand.Instance()
	op := inst.Operation(key)
	src := inst.Machine(srcID)
	tgt := inst.Machine(tgtID)

	remaining := remainingByStart(src, op)
	if err := cand.Unschedule(op); err != nil {
		return false
	}
	if err := rebuild(cand, src, remaining); err != nil {
		return false
	}
	if err := cand.Schedule(op, tgt); err != nil {
		return false
	}
	if err := rebuild(cand, tgt, byKey(tgt.ScheduledOperations())); err != nil {
		return false
	}
	return true
}
