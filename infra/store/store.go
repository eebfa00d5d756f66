package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/maelqr/ecosched/core/shop"
)

// LoadInstance reads a problem instance from a folder. The folder name is
// the instance name; the folder holds "<name>_mach.csv" with the machine
// parameters and "<name>_op.csv" with the operation options.
func LoadInstance(folder string) (*shop.Instance, error) {
	name := filepath.Base(filepath.Clean(folder))
	inst := shop.NewInstance(name)
	if err := loadMachines(inst, filepath.Join(folder, name+"_mach.csv")); err != nil {
		return nil, fmt.Errorf("load machines: %w", err)
	}
	if err := loadOperations(inst, filepath.Join(folder, name+"_op.csv")); err != nil {
		return nil, fmt.Errorf("load operations: %w", err)
	}
	return inst, nil
}

func loadMachines(inst *shop.Instance, path string) error {
	return readRows(path, 7, func(row []int) error {
		inst.AddMachine(row[0], shop.MachineSpec{
			SetUpTime:      row[1],
			SetUpEnergy:    row[2],
			TearDownTime:   row[3],
			TearDownEnergy: row[4],
			MinConsumption: row[5],
			EndTime:        row[6],
		})
		return nil
	})
}

func loadOperations(inst *shop.Instance, path string) error {
	return readRows(path, 5, func(row []int) error {
		op := inst.EnsureOperation(row[0], row[1])
		op.AddOption(row[2], row[3], row[4])
		return nil
	})
}

// SaveSolution writes the schedule to "<name>_operations.csv" and the
// machine power windows to "<name>_machines.csv" in dir.
func SaveSolution(sol *shop.Solution, dir string) error {
	inst := sol.Instance()

	opPath := filepath.Join(dir, inst.Name()+"_operations.csv")
	err := writeRows(opPath, []string{"job_id", "operation_id", "machine_id", "start_time"}, func(w *csv.Writer) error {
		for _, op := range inst.Operations() {
			if !op.Assigned() {
				continue
			}
			rec := []string{
				strconv.Itoa(op.JobID()),
				strconv.Itoa(op.ID()),
				strconv.Itoa(op.AssignedTo()),
				strconv.Itoa(op.Start()),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save operations: %w", err)
	}

	machPath := filepath.Join(dir, inst.Name()+"_machines.csv")
	err = writeRows(machPath, []string{"machine_id", "start_time", "stop_time"}, func(w *csv.Writer) error {
		for _, m := range inst.Machines() {
			for _, win := range m.Windows() {
				rec := []string{
					strconv.Itoa(m.ID()),
					strconv.Itoa(win.Start),
					strconv.Itoa(win.Stop),
				}
				if err := w.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save machines: %w", err)
	}
	return nil
}

// LoadSolution replays a saved schedule onto a fresh copy of the instance.
// The returned solution is suitable for evaluation and export.
func LoadSolution(inst *shop.Instance, dir string) (*shop.Solution, error) {
	sol := shop.NewSolution(inst)

	opPath := filepath.Join(dir, inst.Name()+"_operations.csv")
	err := readRows(opPath, 4, func(row []int) error {
		op := inst.Operation(shop.OpKey{Job: row[0], Op: row[1]})
		if op == nil {
			return fmt.Errorf("unknown operation J%d/O%d", row[0], row[1])
		}
		m := inst.Machine(row[2])
		if m == nil {
			return fmt.Errorf("unknown machine %d", row[2])
		}
		// Placement checks are skipped: the file records a schedule that
		// was already validated when it was saved.
		op.Schedule(row[2], row[3], false)
		m.RestoreOperation(op)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load operations: %w", err)
	}

	machPath := filepath.Join(dir, inst.Name()+"_machines.csv")
	err = readRows(machPath, 3, func(row []int) error {
		m := inst.Machine(row[0])
		if m == nil {
			return fmt.Errorf("unknown machine %d", row[0])
		}
		m.RestoreWindow(shop.Window{Start: row[1], Stop: row[2]})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load machines: %w", err)
	}
	return sol, nil
}

// readRows reads a CSV file with a header line and hands each subsequent
// row, converted to integers, to fn.
func readRows(path string, fields int, fn func(row []int) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil {
		return fmt.Errorf("%s: missing header: %w", path, err)
	}
	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		line++
		if len(rec) < fields {
			return fmt.Errorf("%s:%d: expected %d fields, got %d", path, line, fields, len(rec))
		}
		row := make([]int, fields)
		for i := 0; i < fields; i++ {
			v, err := strconv.Atoi(rec[i])
			if err != nil {
				return fmt.Errorf("%s:%d: field %d: %w", path, line, i, err)
			}
			row[i] = v
		}
		if err := fn(row); err != nil {
			return fmt.Errorf("%s:%d: %w", path, line, err)
		}
	}
}

// writeRows creates a CSV file with the given header and lets fn emit the
// data rows.
func writeRows(path string, header []string, fn func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := fn(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
