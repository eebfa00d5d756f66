// Package export renders solved schedules for downstream consumption,
// either as a single JSON document or as CSV rows.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/maelqr/ecosched/core/shop"
)

// Entry is one scheduled operation.
type Entry struct {
	Job       int `json:"job"`
	Operation int `json:"operation"`
	Machine   int `json:"machine"`
	Start     int `json:"start"`
	End       int `json:"end"`
	Energy    int `json:"energy"`
}

// Window is one powered period of a machine.
type Window struct {
	Machine int `json:"machine"`
	Start   int `json:"start"`
	Stop    int `json:"stop"`
}

// Plan is the exportable view of a solved schedule.
type Plan struct {
	Instance  string   `json:"instance"`
	Feasible  bool     `json:"feasible"`
	Objective float64  `json:"objective"`
	Energy    int      `json:"energy"`
	Makespan  int      `json:"makespan"`
	Entries   []Entry  `json:"entries"`
	Timeline  []Window `json:"timeline"`
}

// NewPlan captures the solution into a Plan. Unassigned operations are left
// out; energy and makespan reflect the solution as-is. The objective is
// carried only for feasible plans: Feasible is the tag consumers branch on,
// and the infeasible sentinel is not representable in JSON.
func NewPlan(sol *shop.Solution) Plan {
	inst := sol.Instance()
	p := Plan{
		Instance: inst.Name(),
		Feasible: sol.IsFeasible(),
		Energy:   sol.TotalEnergy(),
		Makespan: sol.Cmax(),
	}
	if p.Feasible {
		p.Objective = sol.Objective()
	}
	for _, op := range inst.Operations() {
		if !op.Assigned() {
			continue
		}
		p.Entries = append(p.Entries, Entry{
			Job:       op.JobID(),
			Operation: op.ID(),
			Machine:   op.AssignedTo(),
			Start:     op.Start(),
			End:       op.End(),
			Energy:    op.Energy(),
		})
	}
	for _, m := range inst.Machines() {
		for _, w := range m.Windows() {
			p.Timeline = append(p.Timeline, Window{Machine: m.ID(), Start: w.Start, Stop: w.Stop})
		}
	}
	return p
}

// WriteJSON writes the plan to w as one JSON document.
func WriteJSON(w io.Writer, p Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// WriteCSV writes the plan's operation entries to w in CSV format.
func WriteCSV(w io.Writer, p Plan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"job_id", "operation_id", "machine_id", "start_time", "end_time", "energy"}); err != nil {
		return err
	}
	for _, e := range p.Entries {
		rec := []string{
			strconv.Itoa(e.Job),
			strconv.Itoa(e.Operation),
			strconv.Itoa(e.Machine),
			strconv.Itoa(e.Start),
			strconv.Itoa(e.End),
			strconv.Itoa(e.Energy),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
