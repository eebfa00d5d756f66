package config

import "fmt"

// ExportConfig defines how solved schedules are written out.
type ExportConfig struct {
	// Format is "json" or "csv".
	Format string `json:"format"`
	// Dir is the directory solution files are written to.
	Dir string `json:"dir"`
}

// SetDefaults applies sane defaults.
func (c *ExportConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = "json"
	}
	if c.Dir == "" {
		c.Dir = "."
	}
}

// Validate checks field values.
func (c ExportConfig) Validate() error {
	if c.Format != "json" && c.Format != "csv" {
		return fmt.Errorf("unknown export format %s", c.Format)
	}
	return nil
}
