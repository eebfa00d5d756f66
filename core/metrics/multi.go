package metrics

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink over the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSolveResult forwards the records to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordSolveResult(res []SolveResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordSolveResult(res); err != nil {
			return err
		}
	}
	return nil
}

// RecordMachineUsage forwards usage snapshots to the sinks that support them.
func (m *MultiSink) RecordMachineUsage(evs []MachineUsageEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(MachineUsageRecorder); ok {
			if err := rec.RecordMachineUsage(evs); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordBenchSummary forwards benchmark summaries to the sinks that support
// them.
func (m *MultiSink) RecordBenchSummary(ev BenchSummaryEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(BenchSummaryRecorder); ok {
			if err := rec.RecordBenchSummary(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
