package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/maelqr/ecosched/core/shop"
)

func solvedSolution(t *testing.T) *shop.Solution {
	t.Helper()
	inst := shop.NewInstance("toy")
	inst.AddMachine(1, shop.MachineSpec{SetUpTime: 1, SetUpEnergy: 2, TearDownTime: 1, TearDownEnergy: 2, MinConsumption: 1, EndTime: 50})
	op := inst.EnsureOperation(1, 0)
	op.AddOption(1, 4, 10)

	sol := shop.NewSolution(inst)
	if err := sol.Schedule(op, inst.Machine(1)); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	return sol
}

func TestNewPlan(t *testing.T) {
	sol := solvedSolution(t)
	p := NewPlan(sol)

	if p.Instance != "toy" || !p.Feasible {
		t.Fatalf("unexpected plan header: %+v", p)
	}
	if len(p.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(p.Entries))
	}
	e := p.Entries[0]
	if e.Machine != 1 || e.End-e.Start != 4 || e.Energy != 10 {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if len(p.Timeline) != 1 {
		t.Fatalf("expected 1 window, got %d", len(p.Timeline))
	}
	if p.Objective != sol.Evaluate() {
		t.Fatalf("objective mismatch")
	}
}

func TestWriteJSONInfeasible(t *testing.T) {
	inst := shop.NewInstance("toy")
	inst.AddMachine(1, shop.MachineSpec{SetUpTime: 1, SetUpEnergy: 2, TearDownTime: 1, TearDownEnergy: 2, MinConsumption: 1, EndTime: 50})
	op := inst.EnsureOperation(1, 0)
	op.AddOption(1, 4, 10)
	sol := shop.NewSolution(inst)

	p := NewPlan(sol)
	if p.Feasible {
		t.Fatalf("unassigned operation must make the plan infeasible")
	}
	if p.Objective != 0 {
		t.Fatalf("infeasible plan must not carry an objective, got %v", p.Objective)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, p); err != nil {
		t.Fatalf("write: %v", err)
	}
	var decoded Plan
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Feasible || decoded.Objective != 0 {
		t.Fatalf("unexpected document: %+v", decoded)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewPlan(solvedSolution(t))); err != nil {
		t.Fatalf("write: %v", err)
	}
	var decoded Plan
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Instance != "toy" || len(decoded.Entries) != 1 {
		t.Fatalf("unexpected document: %+v", decoded)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, NewPlan(solvedSolution(t))); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if lines[0] != "job_id,operation_id,machine_id,start_time,end_time,energy" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,0,1,") {
		t.Fatalf("unexpected row: %s", lines[1])
	}
}
