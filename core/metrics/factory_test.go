package metrics_test

import (
	"testing"

	"github.com/maelqr/ecosched/core/factory"
	metrics "github.com/maelqr/ecosched/core/metrics"
	_ "github.com/maelqr/ecosched/infra/metrics"
)

func TestMetricsFactory_Builtins(t *testing.T) {
	s, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}})
	if err != nil {
		t.Fatalf("create nop: %v", err)
	}
	if s == nil {
		t.Fatal("expected sink instance")
	}
	if _, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "missing"}}); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestNewMetricsSink_Multi(t *testing.T) {
	s, err := metrics.NewMetricsSink(nil)
	if err != nil {
		t.Fatalf("create default: %v", err)
	}
	if _, ok := s.(metrics.NopSink); !ok {
		t.Fatalf("expected NopSink for empty config")
	}

	s, err = metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "nop"}})
	if err != nil {
		t.Fatalf("create multi: %v", err)
	}
	multi, ok := s.(*metrics.MultiSink)
	if !ok {
		t.Fatalf("expected MultiSink for two configs")
	}
	if len(multi.Sinks) != 2 {
		t.Fatalf("expected 2 sub-sinks, got %d", len(multi.Sinks))
	}
}
