package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `solver:
  alpha: 0.7
  beta: 0.3
  heuristic: "random"
  strategy: "first"
  neighborhoods: ["move"]
  seed: 42
bench:
  runs: 25
metrics:
  sinks:
    - type: "nop"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"alpha", cfg.Solver.Alpha, 0.7},
		{"beta", cfg.Solver.Beta, 0.3},
		{"alpha_local default", cfg.Solver.AlphaLocal, float64(1)},
		{"heuristic", cfg.Solver.Heuristic, "random"},
		{"strategy", cfg.Solver.Strategy, "first"},
		{"neighborhood", len(cfg.Solver.Neighborhoods) == 1 && cfg.Solver.Neighborhoods[0] == "move", true},
		{"seed", cfg.Solver.Seed, int64(42)},
		{"runs", cfg.Bench.Runs, 25},
		{"export format default", cfg.Export.Format, "json"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `solver:
  heuristic: "simulated-annealing"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown heuristic")
	}
}

func TestLoadRejectsUnsupportedExtension(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
