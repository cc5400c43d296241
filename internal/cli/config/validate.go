package config

import (
	"fmt"
	"os"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.CatalogDir == "" {
		return fmt.Errorf("catalog_dir is required")
	}
	if c.PlanFilename == "" {
		return fmt.Errorf("plan_filename is required")
	}
	if len(c.PlanMarkers) == 0 {
		return fmt.Errorf("plan_markers must list at least one accepted status")
	}

	// Directory existence is checked separately, so help and completion
	// commands work without a project on disk.
	return nil
}

// ValidateDirectories checks if required directories exist.
func (c *Config) ValidateDirectories() error {
	if _, err := os.Stat(c.CatalogDir); os.IsNotExist(err) {
		return fmt.Errorf("catalog directory does not exist: %s\nHint: Create the directory or use --catalog-dir to specify a different path", c.CatalogDir)
	}
	return nil
}
