package shop

// Option describes one admissible machine for an operation with the
// machine-dependent processing time and energy consumption.
type Option struct {
	Duration int
	Energy   int
}

// ScheduleInfo is fixed exactly once per scheduling episode, when the
// operation is placed on a machine. It is cleared by Reset or Unschedule.
type ScheduleInfo struct {
	MachineID int
	Start     int
	Duration  int
	Energy    int
}

// Operation is the atomic unit of work of a job. The admissible-machine
// table and the precedence links are static topology, built when the
// instance is loaded and never touched afterwards. Schedule info is the
// only mutable state.
type Operation struct {
	jobID int
	id    int

	options      map[int]Option
	predecessors []*Operation
	successors   []*Operation

	info *ScheduleInfo
}

// NewOperation creates an unscheduled operation identified by (jobID, id).
func NewOperation(jobID, id int) *Operation {
	return &Operation{jobID: jobID, id: id, options: make(map[int]Option)}
}

func (o *Operation) JobID() int { return o.jobID }
func (o *Operation) ID() int    { return o.id }

// Key returns the instance-wide identity of the operation.
func (o *Operation) Key() OpKey { return OpKey{Job: o.jobID, Op: o.id} }

// AddOption registers an admissible machine. Load-time only.
func (o *Operation) AddOption(machineID, duration, energy int) {
	o.options[machineID] = Option{Duration: duration, Energy: energy}
}

// Option returns the processing option on the given machine.
func (o *Operation) Option(machineID int) (Option, bool) {
	opt, ok := o.options[machineID]
	return opt, ok
}

// Options exposes the admissible-machine table. Callers must not modify it.
func (o *Operation) Options() map[int]Option { return o.options }

// Predecessors returns the operations that must finish before this one starts.
func (o *Operation) Predecessors() []*Operation { return o.predecessors }

// Successors returns the operations that follow this one in its job chain.
func (o *Operation) Successors() []*Operation { return o.successors }

// link establishes the precedence edge prev -> next. Load-time only.
func link(prev, next *Operation) {
	prev.successors = append(prev.successors, next)
	next.predecessors = append(next.predecessors, prev)
}

// Assigned reports whether the operation has schedule info.
func (o *Operation) Assigned() bool { return o.info != nil }

// Info returns the schedule info, nil when unassigned.
func (o *Operation) Info() *ScheduleInfo { return o.info }

// AssignedTo returns the machine the operation runs on, -1 when unassigned.
func (o *Operation) AssignedTo() int {
	if o.info == nil {
		return -1
	}
	return o.info.MachineID
}

// Start returns the scheduled start time, -1 when unassigned.
func (o *Operation) Start() int {
	if o.info == nil {
		return -1
	}
	return o.info.Start
}

// End returns the scheduled completion time, -1 when unassigned.
func (o *Operation) End() int {
	if o.info == nil {
		return -1
	}
	return o.info.Start + o.info.Duration
}

// Duration returns the fixed processing time, -1 when unassigned.
func (o *Operation) Duration() int {
	if o.info == nil {
		return -1
	}
	return o.info.Duration
}

// Energy returns the fixed energy consumption, -1 when unassigned.
func (o *Operation) Energy() int {
	if o.info == nil {
		return -1
	}
	return o.info.Energy
}

// Reset clears the schedule info. Precedence links and machine options are
// static and survive any number of resets.
func (o *Operation) Reset() { o.info = nil }

// IsReady reports whether every predecessor is assigned and finishes at or
// before at.
func (o *Operation) IsReady(at int) bool {
	for _, pred := range o.predecessors {
		if !pred.Assigned() || pred.End() > at {
			return false
		}
	}
	return true
}

// MinStartTime is the earliest start allowed by the precedence constraints,
// computed over the predecessors that are currently assigned. Unassigned
// predecessors are not waited on.
func (o *Operation) MinStartTime() int {
	min := 0
	for _, pred := range o.predecessors {
		if pred.Assigned() && pred.End() > min {
			min = pred.End()
		}
	}
	return min
}

// Schedule fixes the operation on the given machine at the given time,
// taking duration and energy from the admissible-machine table. It fails
// without side effect if the operation is already assigned or the machine is
// not admissible. With check enabled it additionally fails unless the
// operation is ready at that time and at is not before MinStartTime.
// A disabled check is only meant for replaying persisted solutions.
func (o *Operation) Schedule(machineID, at int, check bool) bool {
	opt, ok := o.options[machineID]
	if o.info != nil || !ok {
		return false
	}
	if check {
		if !o.IsReady(at) || at < o.MinStartTime() {
			return false
		}
	}
	o.info = &ScheduleInfo{MachineID: machineID, Start: at, Duration: opt.Duration, Energy: opt.Energy}
	return true
}

// ScheduleAtMinTime schedules the operation at or after min, pushed back to
// MinStartTime when the precedence constraints require it.
func (o *Operation) ScheduleAtMinTime(machineID, min int) bool {
	if o.info != nil {
		return false
	}
	at := min
	if mst := o.MinStartTime(); mst > at {
		at = mst
	}
	return o.Schedule(machineID, at, true)
}
