package optim

import (
	"testing"

	"github.com/maelqr/ecosched/core/shop"
)

// crossedInstance has two single-operation jobs scheduled on each other's
// cheap machine, so only a swap fixes both at once.
func crossedInstance(t *testing.T) (*shop.Instance, *shop.Solution) {
	t.Helper()
	inst := shop.NewInstance("crossed")
	inst.AddMachine(1, shop.MachineSpec{SetUpTime: 1, SetUpEnergy: 2, TearDownTime: 1, TearDownEnergy: 2, MinConsumption: 1, EndTime: 100})
	inst.AddMachine(2, shop.MachineSpec{SetUpTime: 1, SetUpEnergy: 2, TearDownTime: 1, TearDownEnergy: 2, MinConsumption: 1, EndTime: 100})

	a := inst.EnsureOperation(1, 0)
	a.AddOption(1, 4, 100)
	a.AddOption(2, 4, 1)
	b := inst.EnsureOperation(2, 0)
	b.AddOption(1, 4, 1)
	b.AddOption(2, 4, 100)

	sol := shop.NewSolution(inst)
	if err := sol.Schedule(a, inst.Machine(1)); err != nil {
		t.Fatalf("schedule a: %v", err)
	}
	if err := sol.Schedule(b, inst.Machine(2)); err != nil {
		t.Fatalf("schedule b: %v", err)
	}
	return inst, sol
}

func TestOperationSwapBestNeighborImproves(t *testing.T) {
	inst, sol := crossedInstance(t)
	before := sol.Evaluate()

	nb := NewOperationSwap(nil)
	best := nb.BestNeighbor(sol)

	if best == sol {
		t.Fatalf("expected an improving swap")
	}
	if !best.IsFeasible() {
		t.Fatalf("candidate must be feasible, violations: %v", best.Violations())
	}
	if best.Evaluate() >= before {
		t.Fatalf("candidate must strictly improve: %v >= %v", best.Evaluate(), before)
	}

	a := best.Instance().Operation(shop.OpKey{Job: 1, Op: 0})
	b := best.Instance().Operation(shop.OpKey{Job: 2, Op: 0})
	if a.AssignedTo() != 2 || b.AssignedTo() != 1 {
		t.Fatalf("operations must trade machines, got %d and %d", a.AssignedTo(), b.AssignedTo())
	}

	// Input untouched.
	if inst.Operation(shop.OpKey{Job: 1, Op: 0}).AssignedTo() != 1 {
		t.Fatalf("input graph mutated")
	}
}

func TestOperationSwapFirstBetterNeighbor(t *testing.T) {
	_, sol := crossedInstance(t)
	before := sol.Evaluate()

	nb := NewOperationSwap(nil)
	cand := nb.FirstBetterNeighbor(sol)
	if cand == sol || cand.Evaluate() >= before {
		t.Fatalf("expected a strictly improving first swap")
	}
}

func TestOperationSwapSkipsInadmissiblePairs(t *testing.T) {
	inst := shop.NewInstance("pinned")
	inst.AddMachine(1, shop.MachineSpec{SetUpTime: 1, SetUpEnergy: 1, TearDownTime: 1, TearDownEnergy: 1, MinConsumption: 1, EndTime: 100})
	inst.AddMachine(2, shop.MachineSpec{SetUpTime: 1, SetUpEnergy: 1, TearDownTime: 1, TearDownEnergy: 1, MinConsumption: 1, EndTime: 100})

	// Each operation admits only its own machine: no swap is applicable.
	a := inst.EnsureOperation(1, 0)
	a.AddOption(1, 4, 10)
	b := inst.EnsureOperation(2, 0)
	b.AddOption(2, 4, 10)

	sol := shop.NewSolution(inst)
	if err := sol.Schedule(a, inst.Machine(1)); err != nil {
		t.Fatalf("schedule a: %v", err)
	}
	if err := sol.Schedule(b, inst.Machine(2)); err != nil {
		t.Fatalf("schedule b: %v", err)
	}

	nb := NewOperationSwap(nil)
	if got := nb.BestNeighbor(sol); got != sol {
		t.Fatalf("no admissible swap, input must come back")
	}
}
