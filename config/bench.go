package config

import "fmt"

// BenchConfig defines settings for repeated benchmark runs.
type BenchConfig struct {
	// Runs is the number of independent runs per instance.
	Runs int `json:"runs"`
	// Seed initializes the first run; subsequent runs derive their own.
	Seed int64 `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *BenchConfig) SetDefaults() {
	if c.Runs == 0 {
		c.Runs = 10
	}
}

// Validate checks field values.
func (c BenchConfig) Validate() error {
	if c.Runs < 1 {
		return fmt.Errorf("runs must be positive, got %d", c.Runs)
	}
	return nil
}
