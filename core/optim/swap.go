package optim

import (
	"fmt"

	"github.com/maelqr/ecosched/core/logger"
	"github.com/maelqr/ecosched/core/shop"
)

// OperationSwap exchanges two assigned operations between different
// machines when each is admissible on the other's machine. Both machines
// are repaired by a full rebuild: first their remainders in original start
// order, then, after the cross-placement, their full sets ordered by
// (job, operation).
type OperationSwap struct {
	Log logger.Logger
}

// NewOperationSwap returns the swap neighborhood.
func NewOperationSwap(log logger.Logger) *OperationSwap {
	if log == nil {
		log = logger.Nop{}
	}
	return &OperationSwap{Log: log}
}

func (n *OperationSwap) BestNeighbor(sol *shop.Solution) *shop.Solution {
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

func (n *OperationSwap) FirstBetterNeighbor(sol *shop.Solution) *shop.Solution {
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

func (n *OperationSwap) scan(sol *shop.Solution, accept func(*shop.Solution) bool) {
	inst := sol.Instance()
	machines := inst.Machines()
	for i, m1 := range machines {
		ops1 := append([]*shop.Operation(nil), m1.ScheduledOperations()...)
		for _, m2 := range machines[i+1:] {
			ops2 := append([]*shop.Operation(nil), m2.ScheduledOperations()...)
			for _, op1 := range ops1 {
				if _, ok := op1.Option(m2.ID()); !ok {
					continue
				}
				for _, op2 := range ops2 {
					if _, ok := op2.Option(m1.ID()); !ok {
						continue
					}
					cand := sol.Clone()
					if !n.apply(cand, op1.Key(), op2.Key(), m1.ID(), m2.ID()) {
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
}

// apply swaps the two operations on the candidate's own graph. Failures
// only discard the candidate.
func (n *OperationSwap) apply(cand *shop.Solution, k1, k2 shop.OpKey, m1ID, m2ID int) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			n.Log.Debugw("swap candidate discarded", map[string]any{"op1": k1, "op2": k2, "panic": fmt.Sprint(r)})
			ok = false
		}
	}()

	inst := cand.Instance()
	op1 := inst.Operation(k1)
	op2 := inst.Operation(k2)
	m1 := inst.Machine(m1ID)
	m2 := inst.Machine(m2ID)

	rem1 := remainingByStart(m1, op1)
	rem2 := remainingByStart(m2, op2)
	if err := cand.Unschedule(op1); err != nil {
		return false
	}
	if err := cand.Unschedule(op2); err != nil {
		return false
	}
	if err := rebuild(cand, m1, rem1); err != nil {
		return false
	}
	if err := rebuild(cand, m2, rem2); err != nil {
		return false
	}

	// Cross-place in chain order so a same-job pair keeps its precedence.
	first, firstM, second, secondM := op1, m2, op2, m1
	if op2.JobID() < op1.JobID() || (op2.JobID() == op1.JobID() && op2.ID() < op1.ID()) {
		first, firstM, second, secondM = op2, m1, op1, m2
	}
	if err := cand.Schedule(first, firstM); err != nil {
		return false
	}
	if err := cand.Schedule(second, secondM); err != nil {
		return false
	}

	if err := rebuild(cand, m1, byKey(m1.ScheduledOperations())); err != nil {
		return false
	}
	if err := rebuild(cand, m2, byKey(m2.ScheduledOperations())); err != nil {
		return false
	}
	return true
}
