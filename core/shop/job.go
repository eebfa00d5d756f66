package shop

// Job is an ordered chain of operations with strict sequential precedence:
// operation i is the sole predecessor of operation i+1.
type Job struct {
	id      int
	ops     []*Operation
	nextIdx int
}

// NewJob creates an empty job.
func NewJob(id int) *Job { return &Job{id: id} }

func (j *Job) ID() int { return j.id }

// Operations returns the job's operations in chain order.
func (j *Job) Operations() []*Operation { return j.ops }

// OperationCount returns the number of operations in the job.
func (j *Job) OperationCount() int { return len(j.ops) }

// AddOperation appends an operation to the chain and links it to its
// predecessor. Load-time only.
func (j *Job) AddOperation(op *Operation) {
	if len(j.ops) > 0 {
		link(j.ops[len(j.ops)-1], op)
	}
	j.ops = append(j.ops, op)
}

// NextOperation returns the first not-yet-advanced operation, nil once the
// whole chain has been advanced past.
func (j *Job) NextOperation() *Operation {
	if j.nextIdx >= len(j.ops) {
		return nil
	}
	return j.ops[j.nextIdx]
}

// Advance moves the chain cursor to the next operation.
func (j *Job) Advance() {
	if j.nextIdx < len(j.ops) {
		j.nextIdx++
	}
}

// Planned reports whether every operation of the job is assigned.
func (j *Job) Planned() bool {
	for _, op := range j.ops {
		if !op.Assigned() {
			return false
		}
	}
	return true
}

// CompletionTime sums the durations of the job's assigned operations.
func (j *Job) CompletionTime() int {
	total := 0
	for _, op := range j.ops {
		if op.Assigned() {
			total += op.Duration()
		}
	}
	return total
}

// Reset clears the schedule state of every operation and rewinds the chain
// cursor. The chain itself is static.
func (j *Job) Reset() {
	for _, op := range j.ops {
		op.Reset()
	}
	j.nextIdx = 0
}
