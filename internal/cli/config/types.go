// Package config provides configuration management for the bindcheck CLI.
//
// Configuration is resolved from four layers with increasing precedence:
// built-in defaults, an optional bindcheck.yaml file, BINDCHECK_*
// environment variables, and explicitly set CLI flags. All directory paths
// in the resulting Config are absolute, resolved against the project root.
package config

import (
	"github.com/leapstack-labs/bindcheck/internal/scan"
)

// Config holds all CLI configuration options.
type Config struct {
	CatalogDir   string   `koanf:"catalog_dir"`
	ManifestsDir string   `koanf:"manifests_dir"`
	SpecsDir     string   `koanf:"specs_dir"`
	PlanFilename string   `koanf:"plan_filename"`
	PlanMarkers  []string `koanf:"plan_markers"`
	Verbose      bool     `koanf:"verbose"`
	OutputFormat string   `koanf:"output"`

	// ProjectRoot is derived from flags and the filesystem, never read
	// from the config file itself.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values. Plan defaults are shared with the scan
// package so both layers agree on what an accepted plan row looks like.
const (
	DefaultCatalogDir   = "catalog"
	DefaultManifestsDir = "manifests"
	DefaultSpecsDir     = "specs"
	DefaultPlanFilename = scan.DefaultPlanFilename
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// DefaultPlanMarkers returns a copy of the default allow-list of plan table
// status markers that count as accepted bindings.
func DefaultPlanMarkers() []string {
	markers := make([]string, len(scan.DefaultPlanMarkers))
	copy(markers, scan.DefaultPlanMarkers)
	return markers
}
