package optim

import (
	"github.com/maelqr/ecosched/core/shop"
)

// Params carries the tunable weights of the heuristics. Alpha and Beta
// weight total energy and makespan in the solution objective. The local
// pair cost of scheduling an operation on a machine is
// AlphaLocal*duration + BetaLocal*energy.
type Params struct {
	Alpha      float64
	Beta       float64
	AlphaLocal float64
	BetaLocal  float64
}

// DefaultParams weighs duration and energy equally, with the solution's
// default objective weights.
func DefaultParams() Params {
	return Params{Alpha: shop.DefaultAlpha, Beta: shop.DefaultBeta, AlphaLocal: 1, BetaLocal: 1}
}

// newSolution creates the working solution with the objective weights
// applied. Zero weights fall back to the solution defaults.
func newSolution(inst *shop.Instance, p Params) *shop.Solution {
	sol := shop.NewSolution(inst)
	if p.Alpha != 0 || p.Beta != 0 {
		sol.Alpha, sol.Beta = p.Alpha, p.Beta
	}
	return sol
}

// Constructive builds a complete, preferably feasible, schedule from an
// empty instance state. Implementations only ever schedule operations from
// the solution's available pool. A partial (infeasible) result is a valid
// outcome, not an error.
type Constructive interface {
	Build(inst *shop.Instance) *shop.Solution
}

// powerDownBeforeGap shuts the machine down at the end of its previous
// operation when keeping it idle until the operation's earliest start would
// draw more energy than a full power cycle, and the gap is long enough to
// fit the cycle.
func powerDownBeforeGap(m *shop.Machine, op *shop.Operation) {
	if !m.Running() {
		return
	}
	gap := op.MinStartTime() - m.AvailableTime()
	if gap <= m.SetUpTime()+m.TearDownTime() {
		return
	}
	if m.SetUpEnergy()+m.TearDownEnergy() >= gap*m.MinConsumption() {
		return
	}
	m.Stop(m.AvailableTime())
}
