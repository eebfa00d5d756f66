package shop

import "fmt"

// OpKey identifies an operation inside an instance.
type OpKey struct {
	Job int
	Op  int
}

// Instance is the immutable topology of one problem: machines, jobs and
// operations keyed by (job, operation). It is the single owner of the
// static structure; the mutable schedule state lives on the machine and
// operation objects it holds, which is why exploring a candidate schedule
// requires Clone.
//
// Iteration accessors return elements in insertion order so that every scan
// over the instance is deterministic.
type Instance struct {
	name string

	machines    map[int]*Machine
	machineList []*Machine

	jobs    map[int]*Job
	jobList []*Job

	ops    map[OpKey]*Operation
	opList []*Operation
}

// NewInstance creates an empty named instance.
func NewInstance(name string) *Instance {
	return &Instance{
		name:     name,
		machines: make(map[int]*Machine),
		jobs:     make(map[int]*Job),
		ops:      make(map[OpKey]*Operation),
	}
}

func (in *Instance) Name() string { return in.name }

// AddMachine registers a machine. Load-time only.
func (in *Instance) AddMachine(id int, spec MachineSpec) *Machine {
	if m, ok := in.machines[id]; ok {
		return m
	}
	m := NewMachine(id, spec)
	in.machines[id] = m
	in.machineList = append(in.machineList, m)
	return m
}

// EnsureOperation returns the operation with the given key, creating it and
// its job on first appearance. Load-time only.
func (in *Instance) EnsureOperation(jobID, opID int) *Operation {
	key := OpKey{Job: jobID, Op: opID}
	if op, ok := in.ops[key]; ok {
		return op
	}
	job, ok := in.jobs[jobID]
	if !ok {
		job = NewJob(jobID)
		in.jobs[jobID] = job
		in.jobList = append(in.jobList, job)
	}
	op := NewOperation(jobID, opID)
	job.AddOperation(op)
	in.ops[key] = op
	in.opList = append(in.opList, op)
	return op
}

// Machines returns the machines in insertion order.
func (in *Instance) Machines() []*Machine { return in.machineList }

// Jobs returns the jobs in insertion order.
func (in *Instance) Jobs() []*Job { return in.jobList }

// Operations returns the operations in insertion order.
func (in *Instance) Operations() []*Operation { return in.opList }

// Machine looks a machine up by id, nil when absent.
func (in *Instance) Machine(id int) *Machine { return in.machines[id] }

// Job looks a job up by id, nil when absent.
func (in *Instance) Job(id int) *Job { return in.jobs[id] }

// Operation looks an operation up by key, nil when absent.
func (in *Instance) Operation(key OpKey) *Operation { return in.ops[key] }

func (in *Instance) MachineCount() int   { return len(in.machineList) }
func (in *Instance) JobCount() int       { return len(in.jobList) }
func (in *Instance) OperationCount() int { return len(in.opList) }

func (in *Instance) String() string {
	return fmt.Sprintf("%s_M%d_J%d_O%d", in.name, in.MachineCount(), in.JobCount(), in.OperationCount())
}

// Clone deep-copies the whole topology-plus-schedule graph. A candidate
// schedule built on the clone can be discarded without ever touching the
// original.
func (in *Instance) Clone() *Instance {
	out := NewInstance(in.name)

	// Topology first: jobs and operations in original insertion order, so
	// that precedence chains are rebuilt identically.
	for _, op := range in.opList {
		clone := out.EnsureOperation(op.JobID(), op.ID())
		for id, opt := range op.Options() {
			clone.AddOption(id, opt.Duration, opt.Energy)
		}
		if info := op.Info(); info != nil {
			copied := *info
			clone.info = &copied
		}
	}
	for _, job := range in.jobList {
		out.jobs[job.ID()].nextIdx = job.nextIdx
	}

	for _, m := range in.machineList {
		cm := out.AddMachine(m.ID(), m.Spec())
		for _, op := range m.scheduled {
			cm.scheduled = append(cm.scheduled, out.Operation(op.Key()))
		}
		cm.startTimes = append([]int(nil), m.startTimes...)
		cm.stopTimes = append([]int(nil), m.stopTimes...)
		cm.available = m.available
	}
	return out
}
