package shop

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Default objective weights.
const (
	DefaultAlpha = 0.5
	DefaultBeta  = 0.5
)

// Solution is a schedule over one instance. It holds no schedule state of
// its own: every mutation goes straight to the machine and operation
// objects of the bound instance. Candidate exploration therefore always
// goes through Clone.
type Solution struct {
	inst *Instance

	// Alpha weighs total energy, Beta weighs the makespan in the objective.
	Alpha float64
	Beta  float64
}

// NewSolution binds an empty solution to the instance, resetting any
// schedule state left on its graph.
func NewSolution(inst *Instance) *Solution {
	s := &Solution{inst: inst, Alpha: DefaultAlpha, Beta: DefaultBeta}
	s.Reset()
	return s
}

// Instance returns the bound instance.
func (s *Solution) Instance() *Instance { return s.inst }

// Reset clears the schedule state of every machine, job and operation.
func (s *Solution) Reset() {
	for _, m := range s.inst.Machines() {
		m.Reset()
	}
	for _, j := range s.inst.Jobs() {
		j.Reset()
	}
	for _, op := range s.inst.Operations() {
		op.Reset()
	}
}

// Clone duplicates the solution together with the full schedule-bearing
// graph of its instance.
func (s *Solution) Clone() *Solution {
	return &Solution{inst: s.inst.Clone(), Alpha: s.Alpha, Beta: s.Beta}
}

// AvailableOperations returns every unassigned operation that is ready at
// its own minimum start time: the candidate pool for any constructive step.
func (s *Solution) AvailableOperations() []*Operation {
	var out []*Operation
	for _, op := range s.inst.Operations() {
		if !op.Assigned() && op.IsReady(op.MinStartTime()) {
			out = append(out, op)
		}
	}
	return out
}

// Schedule places an available operation at the end of the machine's
// planning, powering the machine on first when it is stopped. The machine
// is started early enough for its setup to complete by the time the
// operation could begin, clamped to the machine's availability.
func (s *Solution) Schedule(op *Operation, m *Machine) error {
	if op.Assigned() {
		return fmt.Errorf("operation J%d/O%d already assigned", op.JobID(), op.ID())
	}
	if !op.IsReady(op.MinStartTime()) {
		return fmt.Errorf("operation J%d/O%d not available", op.JobID(), op.ID())
	}
	start := max(m.AvailableTime(), op.MinStartTime())
	if !m.Running() {
		startUp := op.MinStartTime() - m.SetUpTime()
		if startUp < m.AvailableTime() {
			startUp = m.AvailableTime()
		}
		m.Start(startUp)
		start = max(m.AvailableTime(), startUp+m.SetUpTime())
	}
	m.AddOperation(op, start)
	return nil
}

// Unschedule removes the operation from its machine and clears its schedule
// info. Only neighborhood repair uses it; the affected machine must be
// rebuilt afterwards.
func (s *Solution) Unschedule(op *Operation) error {
	if !op.Assigned() {
		return fmt.Errorf("operation J%d/O%d not assigned", op.JobID(), op.ID())
	}
	m := s.inst.Machine(op.AssignedTo())
	if m == nil || !m.RemoveOperation(op) {
		return fmt.Errorf("operation J%d/O%d missing from machine %d", op.JobID(), op.ID(), op.AssignedTo())
	}
	op.Reset()
	return nil
}

// Violations checks the full set of feasibility constraints and reports
// every broken one. An empty result means the solution is feasible.
func (s *Solution) Violations() []string {
	var out []string

	for _, op := range s.inst.Operations() {
		if !op.Assigned() {
			out = append(out, fmt.Sprintf("operation J%d/O%d unassigned", op.JobID(), op.ID()))
		}
	}

	for _, op := range s.inst.Operations() {
		if !op.Assigned() {
			continue
		}
		if _, ok := op.Option(op.AssignedTo()); !ok {
			out = append(out, fmt.Sprintf("operation J%d/O%d on inadmissible machine %d", op.JobID(), op.ID(), op.AssignedTo()))
		}
		for _, pred := range op.Predecessors() {
			if !pred.Assigned() {
				out = append(out, fmt.Sprintf("operation J%d/O%d scheduled before predecessor O%d", op.JobID(), op.ID(), pred.ID()))
			} else if pred.End() > op.Start() {
				out = append(out, fmt.Sprintf("operation J%d/O%d starts at %d before predecessor O%d ends at %d",
					op.JobID(), op.ID(), op.Start(), pred.ID(), pred.End()))
			}
		}
	}

	for _, m := range s.inst.Machines() {
		ops := append([]*Operation(nil), m.ScheduledOperations()...)
		sort.Slice(ops, func(i, j int) bool { return ops[i].Start() < ops[j].Start() })
		for i := 1; i < len(ops); i++ {
			if ops[i-1].End() > ops[i].Start() {
				out = append(out, fmt.Sprintf("machine %d: operations J%d/O%d and J%d/O%d overlap",
					m.ID(), ops[i-1].JobID(), ops[i-1].ID(), ops[i].JobID(), ops[i].ID()))
			}
		}

		windows := m.Windows()
		for _, op := range ops {
			if !op.Assigned() {
				continue
			}
			inWindow := false
			for _, w := range windows {
				if w.Start+m.SetUpTime() <= op.Start() && op.End() <= w.Stop {
					inWindow = true
					break
				}
			}
			if !inWindow {
				out = append(out, fmt.Sprintf("machine %d: operation J%d/O%d [%d,%d) outside active windows",
					m.ID(), op.JobID(), op.ID(), op.Start(), op.End()))
			}
		}

		for _, stop := range m.StopTimes() {
			if stop > m.EndTime() {
				out = append(out, fmt.Sprintf("machine %d: stop at %d after horizon %d", m.ID(), stop, m.EndTime()))
			}
		}
	}

	return out
}

// IsFeasible reports whether every constraint holds.
func (s *Solution) IsFeasible() bool { return len(s.Violations()) == 0 }

// Cmax is the makespan: the maximum job completion time, using only the
// durations of assigned operations.
func (s *Solution) Cmax() int {
	cmax := 0
	for _, j := range s.inst.Jobs() {
		if ct := j.CompletionTime(); ct > cmax {
			cmax = ct
		}
	}
	return cmax
}

// SumCompletionTimes sums the completion times of all jobs.
func (s *Solution) SumCompletionTimes() int {
	total := 0
	for _, j := range s.inst.Jobs() {
		total += j.CompletionTime()
	}
	return total
}

// TotalEnergy sums the energy bill of every machine, idle draw included.
func (s *Solution) TotalEnergy() int {
	total := 0
	for _, m := range s.inst.Machines() {
		total += m.TotalEnergy()
	}
	return total
}

// Objective is the weighted combination of energy and makespan, regardless
// of feasibility.
func (s *Solution) Objective() float64 {
	return s.Alpha*float64(s.TotalEnergy()) + s.Beta*float64(s.Cmax())
}

// Evaluate returns the objective, or +Inf when the solution is infeasible.
// +Inf is the one infeasible sentinel: callers compare with < and never
// need a separate flag, but should branch on IsFeasible before reporting
// the value.
func (s *Solution) Evaluate() float64 {
	if !s.IsFeasible() {
		return math.Inf(1)
	}
	return s.Objective()
}

func (s *Solution) String() string {
	var b strings.Builder
	if s.IsFeasible() {
		fmt.Fprintf(&b, "feasible cmax=%d energy=%d sum_ci=%d objective=%.2f",
			s.Cmax(), s.TotalEnergy(), s.SumCompletionTimes(), s.Objective())
	} else {
		fmt.Fprintf(&b, "infeasible cmax=%d energy=%d violations=%d",
			s.Cmax(), s.TotalEnergy(), len(s.Violations()))
	}
	return b.String()
}
