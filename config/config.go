package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/maelqr/ecosched/core/metrics"
)

type Config struct {
	Solver  SolverConfig   `json:"solver"`
	Bench   BenchConfig    `json:"bench"`
	Export  ExportConfig   `json:"export"`
	Metrics metrics.Config `json:"metrics"`
}

// Load reads the configuration file at path, applies environment overrides,
// fills defaults and validates the result. YAML and JSON are supported,
// selected by file extension.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. ES_SOLVER__SEED=7.
	if err := k.Load(env.Provider("ES_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "es_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Solver.SetDefaults()
	cfg.Bench.SetDefaults()
	cfg.Export.SetDefaults()
	if err := cfg.Solver.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Bench.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Export.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
