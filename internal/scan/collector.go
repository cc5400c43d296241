package scan

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DefaultPlanFilename is the reserved plan document name.
const DefaultPlanFilename = "plan.md"

// DefaultPlanMarkers is the acceptance marker allow-list applied when the
// options carry none.
var DefaultPlanMarkers = []string{"matched", "auto-applied", "selected"}

// Options configures a collection run.
type Options struct {
	ManifestsDir string
	SpecsDir     string
	PlanFilename string   // defaults to DefaultPlanFilename
	PlanMarkers  []string // defaults to DefaultPlanMarkers
}

// Collect gathers references from the manifests root, then the specs root.
//
// Order is deterministic: roots in that fixed order, lexical walk order
// within each root, recognizer order within each document. Unreadable files
// are recorded on the result and never abort the walk; missing roots yield
// zero references. The only hard error is an unusable marker allow-list.
func Collect(opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	planFile := opts.PlanFilename
	if planFile == "" {
		planFile = DefaultPlanFilename
	}
	markers := opts.PlanMarkers
	if len(markers) == 0 {
		markers = DefaultPlanMarkers
	}

	row, err := planRowPattern(markers)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{}

	collectManifests(opts.ManifestsDir, result, logger)
	collectPlans(opts.SpecsDir, planFile, row, result, logger)

	result.Duration = time.Since(start)

	logger.Debug("references collected",
		"refs", len(result.Refs),
		"manifest_files", result.ManifestFiles,
		"plan_files", result.PlanFiles,
		"errors", len(result.Errors))

	return result, nil
}

// collectManifests scans every YAML document under the manifests root.
func collectManifests(dir string, result *Result, logger *slog.Logger) {
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return
	}

	_ = filepath.Walk(dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil || info.IsDir() || !isYAMLFile(info.Name()) {
			return nil //nolint:nilerr // Skip directories and non-YAML files
		}

		result.ManifestFiles++

		content, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by filepath.Walk
		if err != nil {
			logger.Warn("failed to read manifest", "path", path, "error", err.Error())
			result.Errors = append(result.Errors, ScanError{Path: path, Message: err.Error()})
			return nil //nolint:nilerr // Continue with other files (graceful degradation)
		}

		result.Refs = append(result.Refs, manifestRefs(path, content)...)
		return nil
	})
}

// collectPlans scans every plan document under the specs root.
func collectPlans(dir, planFile string, row *regexp.Regexp, result *Result, logger *slog.Logger) {
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return
	}

	_ = filepath.Walk(dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil || info.IsDir() || info.Name() != planFile {
			return nil //nolint:nilerr // Skip directories and other files
		}

		result.PlanFiles++

		content, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by filepath.Walk
		if err != nil {
			logger.Warn("failed to read plan", "path", path, "error", err.Error())
			result.Errors = append(result.Errors, ScanError{Path: path, Message: err.Error()})
			return nil //nolint:nilerr // Continue with other files (graceful degradation)
		}

		result.Refs = append(result.Refs, planRefs(path, content, row)...)
		return nil
	})
}

func isYAMLFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
