package optim

import (
	"math"

	"github.com/maelqr/ecosched/core/logger"
	"github.com/maelqr/ecosched/core/shop"
)

// Greedy schedules, at every step, the (ready operation, admissible
// machine) pair with the lowest local cost. The scan order over operations
// and machines is the instance insertion order and the first minimum found
// wins ties, so runs are fully deterministic.
type Greedy struct {
	Params Params
	Log    logger.Logger
}

// NewGreedy returns a deterministic greedy builder.
func NewGreedy(params Params, log logger.Logger) *Greedy {
	if log == nil {
		log = logger.Nop{}
	}
	return &Greedy{Params: params, Log: log}
}

// Build constructs a schedule on a fresh solution over inst. When some
// ready operation has no admissible machine left, the loop stops short and
// the returned solution is infeasible.
func (g *Greedy) Build(inst *shop.Instance) *shop.Solution {
	sol := newSolution(inst, g.Params)
	for {
		ready := sol.AvailableOperations()
		if len(ready) == 0 {
			break
		}

		var bestOp *shop.Operation
		var bestMachine *shop.Machine
		bestCost := math.Inf(1)
		for _, op := range ready {
			for _, m := range inst.Machines() {
				opt, ok := op.Option(m.ID())
				if !ok {
					continue
				}
				cost := g.Params.AlphaLocal*float64(opt.Duration) + g.Params.BetaLocal*float64(opt.Energy)
				if cost < bestCost {
					bestCost, bestOp, bestMachine = cost, op, m
				}
			}
		}
		if bestOp == nil {
			g.Log.Warnf("greedy: no admissible pair for %d ready operations, stopping with a partial schedule", len(ready))
			break
		}

		powerDownBeforeGap(bestMachine, bestOp)
		if err := sol.Schedule(bestOp, bestMachine); err != nil {
			g.Log.Errorf("greedy: schedule J%d/O%d on machine %d: %v", bestOp.JobID(), bestOp.ID(), bestMachine.ID(), err)
			break
		}
	}
	return sol
}
