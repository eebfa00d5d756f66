package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/maelqr/ecosched/core/metrics"
)

// PromSink records solver runs in Prometheus metrics.
type PromSink struct {
	runs      *prometheus.CounterVec
	objective *prometheus.GaugeVec
	energy    *prometheus.GaugeVec
	makespan  *prometheus.GaugeVec
	duration  *prometheus.HistogramVec
	usage     *prometheus.GaugeVec
}

// NewPromSink registers solver metrics on the default Prometheus registerer.
// The exposition server should be started separately with StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solve_runs_total",
		Help: "Total number of solver runs",
	}, []string{"instance", "heuristic", "strategy", "feasible"})
	objective := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "solve_objective",
		Help: "Objective value of the last solver run",
	}, []string{"instance", "heuristic", "strategy"})
	energy := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "solve_energy_units",
		Help: "Total energy of the last feasible schedule",
	}, []string{"instance", "heuristic", "strategy"})
	makespan := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "solve_makespan",
		Help: "Makespan of the last feasible schedule",
	}, []string{"instance", "heuristic", "strategy"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solve_duration_seconds",
		Help:    "Wall-clock time of a solver run",
		Buckets: prometheus.DefBuckets,
	}, []string{"instance", "heuristic", "strategy"})
	usage := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "machine_energy_units",
		Help: "Energy consumed per machine in the last recorded schedule",
	}, []string{"instance", "machine_id"})

	s := &PromSink{runs: runs, objective: objective, energy: energy, makespan: makespan, duration: duration, usage: usage}
	for _, c := range []prometheus.Collector{runs, objective, energy, makespan, duration, usage} {
		if err := register(reg, c, s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// register tolerates collectors already present on the registerer so that
// repeated sink construction in one process reuses them.
func register(reg prometheus.Registerer, c prometheus.Collector, s *PromSink) error {
	err := reg.Register(c)
	if err == nil {
		return nil
	}
	are, ok := err.(prometheus.AlreadyRegisteredError)
	if !ok {
		return err
	}
	switch c {
	case s.runs:
		s.runs = are.ExistingCollector.(*prometheus.CounterVec)
	case s.objective:
		s.objective = are.ExistingCollector.(*prometheus.GaugeVec)
	case s.energy:
		s.energy = are.ExistingCollector.(*prometheus.GaugeVec)
	case s.makespan:
		s.makespan = are.ExistingCollector.(*prometheus.GaugeVec)
	case s.duration:
		s.duration = are.ExistingCollector.(*prometheus.HistogramVec)
	case s.usage:
		s.usage = are.ExistingCollector.(*prometheus.GaugeVec)
	}
	return nil
}

// RecordSolveResult updates the run counter and last-run gauges.
func (s *PromSink) RecordSolveResult(res []coremetrics.SolveResult) error {
	for _, r := range res {
		s.runs.WithLabelValues(r.Instance, r.Heuristic, r.Strategy, strconv.FormatBool(r.Feasible)).Inc()
		s.duration.WithLabelValues(r.Instance, r.Heuristic, r.Strategy).Observe(r.Duration.Seconds())
		if !r.Feasible {
			continue
		}
		s.objective.WithLabelValues(r.Instance, r.Heuristic, r.Strategy).Set(r.Objective)
		s.energy.WithLabelValues(r.Instance, r.Heuristic, r.Strategy).Set(float64(r.Energy))
		s.makespan.WithLabelValues(r.Instance, r.Heuristic, r.Strategy).Set(float64(r.Makespan))
	}
	return nil
}

// RecordMachineUsage sets the per-machine energy gauges.
func (s *PromSink) RecordMachineUsage(evs []coremetrics.MachineUsageEvent) error {
	for _, ev := range evs {
		s.usage.WithLabelValues(ev.Instance, strconv.Itoa(ev.MachineID)).Set(float64(ev.Energy))
	}
	return nil
}
