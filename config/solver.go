package config

import "fmt"

// SolverConfig defines how an instance is solved.
type SolverConfig struct {
	// Alpha and Beta weight energy and makespan in the objective.
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	// AlphaLocal and BetaLocal weight duration and energy when the greedy
	// heuristic scores a single assignment.
	AlphaLocal float64 `json:"alpha_local"`
	BetaLocal  float64 `json:"beta_local"`
	// Heuristic selects the constructive: "greedy" or "random".
	Heuristic string `json:"heuristic"`
	// Strategy selects the local search driver: "none", "first" or "best".
	Strategy string `json:"strategy"`
	// Neighborhoods lists the neighborhoods explored by the driver:
	// "move" and/or "swap".
	Neighborhoods []string `json:"neighborhoods"`
	// Seed initializes the random heuristic. Zero seeds from the clock.
	Seed int64 `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *SolverConfig) SetDefaults() {
	if c.Alpha == 0 && c.Beta == 0 {
		c.Alpha, c.Beta = 0.5, 0.5
	}
	if c.AlphaLocal == 0 && c.BetaLocal == 0 {
		c.AlphaLocal, c.BetaLocal = 1, 1
	}
	if c.Heuristic == "" {
		c.Heuristic = "greedy"
	}
	if c.Strategy == "" {
		c.Strategy = "best"
	}
	if len(c.Neighborhoods) == 0 {
		c.Neighborhoods = []string{"move", "swap"}
	}
}

// Validate checks field values.
func (c SolverConfig) Validate() error {
	switch c.Heuristic {
	case "greedy", "random":
	default:
		return fmt.Errorf("unknown heuristic %s", c.Heuristic)
	}
	switch c.Strategy {
	case "none", "first", "best":
	default:
		return fmt.Errorf("unknown strategy %s", c.Strategy)
	}
	for _, n := range c.Neighborhoods {
		if n != "move" && n != "swap" {
			return fmt.Errorf("unknown neighborhood %s", n)
		}
	}
	if c.Strategy == "first" && len(c.Neighborhoods) != 1 {
		return fmt.Errorf("strategy first takes exactly one neighborhood, got %d", len(c.Neighborhoods))
	}
	if c.Alpha < 0 || c.Beta < 0 {
		return fmt.Errorf("objective weights must not be negative")
	}
	return nil
}
