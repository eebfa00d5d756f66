package optim

import (
	"fmt"
	"sort"

	"github.com/maelqr/ecosched/core/shop"
)

// Neighborhood enumerates schedules reachable from a solution by one
// elementary edit. Both methods leave the input untouched: every candidate
// is built on an independent clone of the solution's whole graph, and a
// rejected candidate is simply discarded.
type Neighborhood interface {
	// BestNeighbor returns the strictly best improving candidate in the
	// neighborhood, or the solution itself when none improves.
	BestNeighbor(sol *shop.Solution) *shop.Solution
	// FirstBetterNeighbor returns the first strictly improving candidate in
	// a fixed scan order, or the solution itself when none improves.
	FirstBetterNeighbor(sol *shop.Solution) *shop.Solution
}

// remainingByStart snapshots a machine's schedule minus the excluded
// operations, ordered by current start time. The order is captured before
// any unscheduling clears it.
func remainingByStart(m *shop.Machine, exclude ...*shop.Operation) []*shop.Operation {
	var out []*shop.Operation
	for _, op := range m.ScheduledOperations() {
		skip := false
		for _, ex := range exclude {
			if op == ex {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, op)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start() < out[j].Start() })
	return out
}

// byKey orders operations by (job, operation) identity.
func byKey(ops []*shop.Operation) []*shop.Operation {
	out := append([]*shop.Operation(nil), ops...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].JobID() != out[j].JobID() {
			return out[i].JobID() < out[j].JobID()
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}

// rebuild fully resets the machine and reschedules ops in the given
// order. Scheduling is order dependent through the setup/teardown events
// and the availability cursor, so repair never attempts a partial edit.
func rebuild(sol *shop.Solution, m *shop.Machine, ops []*shop.Operation) error {
	for _, op := range ops {
		if op.Assigned() {
			if err := sol.Unschedule(op); err != nil {
				return err
			}
		}
	}
	m.Reset()
	for _, op := range ops {
		if err := sol.Schedule(op, m); err != nil {
			return fmt.Errorf("rebuild machine %d: %w", m.ID(), err)
		}
	}
	return nil
}
