package optim

import (
	"testing"

	"github.com/maelqr/ecosched/core/shop"
)

// movableInstance has one operation that is strictly cheaper on an
// otherwise idle machine.
func movableInstance() *shop.Instance {
	inst := shop.NewInstance("movable")
	inst.AddMachine(1, shop.MachineSpec{SetUpTime: 1, SetUpEnergy: 10, TearDownTime: 1, TearDownEnergy: 10, MinConsumption: 2, EndTime: 100})
	inst.AddMachine(2, shop.MachineSpec{SetUpTime: 1, SetUpEnergy: 1, TearDownTime: 1, TearDownEnergy: 1, MinConsumption: 1, EndTime: 100})
	op := inst.EnsureOperation(1, 0)
	op.AddOption(1, 10, 100)
	op.AddOption(2, 10, 1)
	return inst
}

// expensiveStart schedules the single operation on machine 1.
func expensiveStart(t *testing.T, inst *shop.Instance) *shop.Solution {
	t.Helper()
	sol := shop.NewSolution(inst)
	op := inst.Operation(shop.OpKey{Job: 1, Op: 0})
	if err := sol.Schedule(op, inst.Machine(1)); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	return sol
}

func TestOperationMoveBestNeighborImproves(t *testing.T) {
	inst := movableInstance()
	sol := expensiveStart(t, inst)
	before := sol.Evaluate()

	nb := NewOperationMove(nil)
	best := nb.BestNeighbor(sol)

	if best == sol {
		t.Fatalf("expected an improving candidate")
	}
	if !best.IsFeasible() {
		t.Fatalf("candidate must be feasible, violations: %v", best.Violations())
	}
	if best.Evaluate() >= before {
		t.Fatalf("candidate must strictly improve: %v >= %v", best.Evaluate(), before)
	}

	movedOp := best.Instance().Operation(shop.OpKey{Job: 1, Op: 0})
	if movedOp.AssignedTo() != 2 {
		t.Fatalf("operation must move to machine 2, got %d", movedOp.AssignedTo())
	}

	// The input solution's graph is untouched.
	if got := inst.Operation(shop.OpKey{Job: 1, Op: 0}).AssignedTo(); got != 1 {
		t.Fatalf("input graph mutated: operation on machine %d", got)
	}
	if len(inst.Machine(2).ScheduledOperations()) != 0 {
		t.Fatalf("input graph mutated: target machine not empty")
	}
}

func TestOperationMoveFirstBetterNeighbor(t *testing.T) {
	inst := movableInstance()
	sol := expensiveStart(t, inst)
	before := sol.Evaluate()

	nb := NewOperationMove(nil)
	cand := nb.FirstBetterNeighbor(sol)
	if cand == sol || cand.Evaluate() >= before {
		t.Fatalf("expected a strictly improving first neighbor")
	}
}

func TestOperationMoveReturnsInputAtLocalOptimum(t *testing.T) {
	inst := movableInstance()
	// Already on the cheap machine: no admissible move improves.
	sol := shop.NewSolution(inst)
	op := inst.Operation(shop.OpKey{Job: 1, Op: 0})
	if err := sol.Schedule(op, inst.Machine(2)); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	nb := NewOperationMove(nil)
	if got := nb.BestNeighbor(sol); got != sol {
		t.Fatalf("best neighbor of a local optimum must be the input")
	}
	if got := nb.FirstBetterNeighbor(sol); got != sol {
		t.Fatalf("first better neighbor of a local optimum must be the input")
	}
}
