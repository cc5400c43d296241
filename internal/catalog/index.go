package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Index documents declare identifiers in two shapes, which may coexist:
//
//	patterns:            # flat list (authoritative)
//	  - id: some-pattern
//	categories:          # legacy category map
//	  storage:
//	    patterns:
//	      - id: other-pattern
//
// Entries without an id, entries that are not mappings, and category values
// that are not mappings are skipped individually.

// loadJSONIndex decodes a JSON index document into set.
func loadJSONIndex(path string, set *IDSet) error {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path is derived from the configured catalog dir
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	collectIndexIDs(doc, set)
	return nil
}

// loadYAMLIndex decodes a YAML index document into set.
func loadYAMLIndex(path string, set *IDSet) error {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path is derived from the configured catalog dir
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	collectIndexIDs(doc, set)
	return nil
}

// collectIndexIDs adds every identifier a decoded index document declares.
func collectIndexIDs(doc map[string]any, set *IDSet) {
	addEntryIDs(doc["patterns"], set)

	categories, _ := doc["categories"].(map[string]any)
	for _, category := range categories {
		cat, ok := category.(map[string]any)
		if !ok {
			continue
		}
		addEntryIDs(cat["patterns"], set)
	}
}

// addEntryIDs adds the id field of each mapping entry in a patterns list.
func addEntryIDs(v any, set *IDSet) {
	entries, _ := v.([]any)
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := m["id"].(string); ok {
			set.Add(id)
		}
	}
}
