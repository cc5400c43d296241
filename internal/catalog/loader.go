package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	indexJSONName   = "index.json"
	indexYAMLName   = "index.yaml"
	patternsDirName = "patterns"
)

// patternIDLine matches a top-level id declaration in a pattern document.
// The value may be single- or double-quoted. Only the first match counts.
var patternIDLine = regexp.MustCompile(`(?m)^id:\s*["']?([a-z0-9-]+)["']?\s*$`)

// LoadError represents a non-fatal error during catalog loading.
type LoadError struct {
	Path    string
	Type    string // "read", "parse"
	Message string
}

// LoadResult contains the identifier set and statistics about the load.
type LoadResult struct {
	IDs *IDSet

	// Sources
	IndexFiles   int
	PatternFiles int

	// Errors (non-fatal)
	Errors []LoadError

	// Timing
	Duration time.Duration
}

// HasErrors returns true if any errors occurred.
func (r *LoadResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Summary returns a human-readable summary.
func (r *LoadResult) Summary() string {
	return fmt.Sprintf(
		"Catalog: %d ids (%d index files, %d pattern files, %d errors) | Duration: %s",
		r.IDs.Len(), r.IndexFiles, r.PatternFiles, len(r.Errors),
		r.Duration.Round(time.Millisecond),
	)
}

// Load builds the valid identifier set for the catalog rooted at dir.
//
// The set is the union of three independent sources: the JSON index, the
// optional YAML index, and the per-entry documents under patterns/. A
// missing directory, a missing index, an unparsable index, or an unreadable
// pattern file never aborts the load; each condition is recorded on the
// result and the remaining sources still contribute.
func Load(dir string, logger *slog.Logger) *LoadResult {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	start := time.Now()
	result := &LoadResult{IDs: NewIDSet()}

	loadIndexes(dir, result, logger)
	loadPatternFiles(filepath.Join(dir, patternsDirName), result, logger)

	result.Duration = time.Since(start)

	logger.Debug("catalog loaded",
		"catalog_dir", dir,
		"ids", result.IDs.Len(),
		"index_files", result.IndexFiles,
		"pattern_files", result.PatternFiles,
		"errors", len(result.Errors))

	return result
}

// loadIndexes decodes index.json and index.yaml when present.
func loadIndexes(dir string, result *LoadResult, logger *slog.Logger) {
	for _, name := range []string{indexJSONName, indexYAMLName} {
		indexPath := filepath.Join(dir, name)
		if _, err := os.Stat(indexPath); os.IsNotExist(err) {
			continue
		}

		var err error
		if strings.HasSuffix(name, ".json") {
			err = loadJSONIndex(indexPath, result.IDs)
		} else {
			err = loadYAMLIndex(indexPath, result.IDs)
		}
		if err != nil {
			logger.Warn("failed to parse catalog index", "path", indexPath, "error", err.Error())
			result.Errors = append(result.Errors, LoadError{
				Path: indexPath, Type: "parse", Message: err.Error(),
			})
			continue
		}

		result.IndexFiles++
	}
}

// loadPatternFiles scans per-entry documents under the patterns directory.
// Each file contributes its basename stem, plus the value of its first
// top-level id line when one is present.
func loadPatternFiles(dir string, result *LoadResult, logger *slog.Logger) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return
	}

	_ = filepath.Walk(dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil || info.IsDir() || !isYAMLFile(info.Name()) {
			return nil //nolint:nilerr // Skip directories and non-YAML files
		}

		result.PatternFiles++
		result.IDs.Add(fileStem(info.Name()))

		content, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by filepath.Walk
		if err != nil {
			logger.Warn("failed to read pattern file", "path", path, "error", err.Error())
			result.Errors = append(result.Errors, LoadError{
				Path: path, Type: "read", Message: err.Error(),
			})
			return nil //nolint:nilerr // Continue with other files (graceful degradation)
		}

		if m := patternIDLine.FindSubmatch(content); m != nil {
			result.IDs.Add(string(m[1]))
		}
		return nil
	})
}

func isYAMLFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

func fileStem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
