// Package scan collects pattern identifier references from dependent
// documents: manifests and plan tables.
package scan

import (
	"fmt"
	"time"
)

// Reference kinds, naming the document class a reference came from.
const (
	KindManifest = "manifest"
	KindPlan     = "plan"
)

// Reference is one occurrence of a pattern identifier in a dependent
// document. Occurrences are kept separately even when the identifier
// repeats.
type Reference struct {
	File string // path as walked
	Line int    // 1-based line of the occurrence
	ID   string
	Kind string // KindManifest or KindPlan
}

// ScanError represents a non-fatal error during reference collection.
type ScanError struct {
	Path    string
	Message string
}

// Result contains the collected references and statistics about the scan.
type Result struct {
	Refs []Reference

	// Files visited
	ManifestFiles int
	PlanFiles     int

	// Errors (non-fatal)
	Errors []ScanError

	// Timing
	Duration time.Duration
}

// HasErrors returns true if any errors occurred.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Summary returns a human-readable summary.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"References: %d (%d manifest files, %d plan files, %d errors) | Duration: %s",
		len(r.Refs), r.ManifestFiles, r.PlanFiles, len(r.Errors),
		r.Duration.Round(time.Millisecond),
	)
}
