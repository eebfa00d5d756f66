package shop

import (
	"fmt"
	"sort"
)

// MachineSpec carries the static parameters of a machine: power-state
// transition costs, idle draw and the hard shutdown horizon.
type MachineSpec struct {
	SetUpTime      int
	SetUpEnergy    int
	TearDownTime   int
	TearDownEnergy int
	MinConsumption int
	EndTime        int
}

// Window is one powered period of a machine, from a start event to the
// matching stop event.
type Window struct {
	Start int
	Stop  int
}

// Machine executes operations one at a time. It is stopped at the beginning
// of the planning and must be started before processing anything. Start and
// Stop are a strict state machine: misuse is a programming-contract
// violation and panics. At most one start event may be unterminated; an
// unterminated run is accounted with an implicit stop at the horizon.
type Machine struct {
	id   int
	spec MachineSpec

	scheduled  []*Operation
	startTimes []int
	stopTimes  []int
	available  int
}

// NewMachine creates a stopped machine.
func NewMachine(id int, spec MachineSpec) *Machine {
	return &Machine{id: id, spec: spec}
}

func (m *Machine) ID() int             { return m.id }
func (m *Machine) SetUpTime() int      { return m.spec.SetUpTime }
func (m *Machine) SetUpEnergy() int    { return m.spec.SetUpEnergy }
func (m *Machine) TearDownTime() int   { return m.spec.TearDownTime }
func (m *Machine) TearDownEnergy() int { return m.spec.TearDownEnergy }
func (m *Machine) MinConsumption() int { return m.spec.MinConsumption }
func (m *Machine) EndTime() int        { return m.spec.EndTime }
func (m *Machine) Spec() MachineSpec   { return m.spec }

// AvailableTime is the next time at which the machine is free, after its
// last operation, setup or teardown.
func (m *Machine) AvailableTime() int { return m.available }

// Running reports whether the machine is currently powered.
func (m *Machine) Running() bool { return len(m.startTimes) > len(m.stopTimes) }

// ScheduledOperations returns the operations placed on the machine, in
// scheduling order. Callers must not modify the slice.
func (m *Machine) ScheduledOperations() []*Operation { return m.scheduled }

// Start powers the machine on at the given time and advances the
// availability cursor past the setup. Starting a running machine or
// starting before the machine is available is a contract violation.
func (m *Machine) Start(at int) {
	if m.Running() {
		panic(fmt.Sprintf("machine %d: start while running", m.id))
	}
	if at < m.available {
		panic(fmt.Sprintf("machine %d: start at %d before available time %d", m.id, at, m.available))
	}
	m.startTimes = append(m.startTimes, at)
	m.available = at + m.spec.SetUpTime
}

// Stop powers the machine off at the given time and advances the
// availability cursor past the teardown. Stopping a stopped machine or
// stopping before the machine is available is a contract violation.
func (m *Machine) Stop(at int) {
	if !m.Running() {
		panic(fmt.Sprintf("machine %d: stop while stopped", m.id))
	}
	if at < m.available {
		panic(fmt.Sprintf("machine %d: stop at %d before available time %d", m.id, at, m.available))
	}
	m.stopTimes = append(m.stopTimes, at)
	m.available = at + m.spec.TearDownTime
}

// AddOperation places the operation at the end of the machine's schedule,
// as soon as possible after start, and advances the availability cursor to
// the operation's end. A failed placement is a contract violation: callers
// must pick operations from the available pool.
func (m *Machine) AddOperation(op *Operation, start int) int {
	if !op.ScheduleAtMinTime(m.id, start) {
		panic(fmt.Sprintf("machine %d: cannot place operation J%d/O%d at %d", m.id, op.JobID(), op.ID(), start))
	}
	m.scheduled = append(m.scheduled, op)
	m.available = op.End()
	return op.Start()
}

// RemoveOperation drops the operation from the machine's schedule list.
// The availability cursor is left untouched: removal is only used by
// neighborhood repair, which fully rebuilds the machine afterwards.
func (m *Machine) RemoveOperation(op *Operation) bool {
	for i, cur := range m.scheduled {
		if cur == op {
			m.scheduled = append(m.scheduled[:i], m.scheduled[i+1:]...)
			return true
		}
	}
	return false
}

// StartTimes returns the power-on events in increasing order.
func (m *Machine) StartTimes() []int {
	out := append([]int(nil), m.startTimes...)
	sort.Ints(out)
	return out
}

// StopTimes returns the power-off events in increasing order. An
// unterminated run contributes an implicit stop at the horizon, for
// accounting purposes only.
func (m *Machine) StopTimes() []int {
	out := append([]int(nil), m.stopTimes...)
	if m.Running() {
		out = append(out, m.spec.EndTime)
	}
	sort.Ints(out)
	return out
}

// Windows pairs the start and stop events into powered periods, the
// accessor consumed by schedule visualization.
func (m *Machine) Windows() []Window {
	starts := m.StartTimes()
	stops := m.StopTimes()
	n := len(starts)
	if len(stops) < n {
		n = len(stops)
	}
	out := make([]Window, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Window{Start: starts[i], Stop: stops[i]})
	}
	return out
}

// WorkingTime sums the powered intervals, counting an unterminated final
// run through to the horizon.
func (m *Machine) WorkingTime() int {
	total := 0
	for i, stop := range m.stopTimes {
		if i < len(m.startTimes) {
			total += stop - m.startTimes[i]
		}
	}
	if m.Running() {
		total += m.spec.EndTime - m.startTimes[len(m.startTimes)-1]
	}
	return total
}

// TotalEnergy is the machine's full energy bill: setups, teardowns
// (including the implicit final stop), operation processing and idle draw.
func (m *Machine) TotalEnergy() int {
	starts := len(m.StartTimes())
	stops := len(m.StopTimes())

	energy := starts*m.spec.SetUpEnergy + stops*m.spec.TearDownEnergy

	processing := 0
	for _, op := range m.scheduled {
		energy += op.Energy()
		processing += op.End() - op.Start()
	}

	idle := m.WorkingTime() - processing - starts*m.spec.SetUpTime - stops*m.spec.TearDownTime
	energy += idle * m.spec.MinConsumption
	return energy
}

// RestoreOperation reattaches an already placed operation when a saved
// schedule is reloaded. Power events are restored separately through
// RestoreWindow.
func (m *Machine) RestoreOperation(op *Operation) {
	m.scheduled = append(m.scheduled, op)
	if op.End() > m.available {
		m.available = op.End()
	}
}

// RestoreWindow reinstates a recorded powered period when a saved schedule
// is reloaded. Restored machines are meant for evaluation, not for further
// scheduling.
func (m *Machine) RestoreWindow(w Window) {
	m.startTimes = append(m.startTimes, w.Start)
	m.stopTimes = append(m.stopTimes, w.Stop)
	if end := w.Stop + m.spec.TearDownTime; end > m.available {
		m.available = end
	}
}

// Reset clears the run state. The machine parameters are static.
func (m *Machine) Reset() {
	m.scheduled = m.scheduled[:0]
	m.startTimes = m.startTimes[:0]
	m.stopTimes = m.stopTimes[:0]
	m.available = 0
}
