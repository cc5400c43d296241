package scan

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// Manifest recognizers. Each one binds a specific document idiom to a
// pattern identifier; values may be single- or double-quoted. A bare id:
// field without a list dash is entry metadata, not a binding, so it stays
// outside listItemID's reach.
var (
	listItemID  = regexp.MustCompile(`(?m)^\s*-\s*id:\s*["']?([a-z0-9-]+)["']?\s*$`)
	patternID   = regexp.MustCompile(`(?m)^\s*pattern_id:\s*["']?([a-z0-9-]+)["']?\s*$`)
	providerID  = regexp.MustCompile(`(?m)^\s*provider:\s*["']?([a-z0-9-]+)["']?\s*$`)
	fromCatalog = regexp.MustCompile(`from_catalog:\s*\[([^\]]+)\]`)
)

// fieldRecognizers run first, in declaration order, each over the whole
// document in text order. fromCatalog runs after them.
var fieldRecognizers = []*regexp.Regexp{listItemID, patternID, providerID}

// manifestRefs extracts every reference a manifest document makes.
func manifestRefs(path string, content []byte) []Reference {
	var refs []Reference

	for _, re := range fieldRecognizers {
		for _, m := range re.FindAllSubmatchIndex(content, -1) {
			refs = append(refs, Reference{
				File: path,
				Line: lineAt(content, m[2]),
				ID:   string(content[m[2]:m[3]]),
				Kind: KindManifest,
			})
		}
	}

	for _, m := range fromCatalog.FindAllSubmatchIndex(content, -1) {
		line := lineAt(content, m[2])
		for _, item := range strings.Split(string(content[m[2]:m[3]]), ",") {
			id := strings.TrimSpace(item)
			id = strings.Trim(id, `"`)
			id = strings.Trim(id, `'`)
			if id == "" {
				continue
			}
			// Elements are not charset-filtered: a malformed element becomes
			// a reference and fails reconciliation, which is the signal we want.
			refs = append(refs, Reference{File: path, Line: line, ID: id, Kind: KindManifest})
		}
	}

	return refs
}

// planRowPattern builds the accepted-row recognizer for a marker allow-list.
// A row matches when its second cell is an identifier and its third cell
// begins with an allow-listed marker. Markers compare case-insensitively;
// the identifier cell stays lowercase-only.
func planRowPattern(markers []string) (*regexp.Regexp, error) {
	if len(markers) == 0 {
		return nil, fmt.Errorf("plan marker allow-list is empty")
	}

	quoted := make([]string, 0, len(markers))
	for _, marker := range markers {
		marker = strings.TrimSpace(marker)
		if marker == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(marker))
	}
	if len(quoted) == 0 {
		return nil, fmt.Errorf("plan marker allow-list is empty")
	}

	pattern := fmt.Sprintf(`\|\s*[^|]+\s*\|\s*([a-z0-9-]+)\s*\|\s*(?i:%s)`, strings.Join(quoted, "|"))
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid plan marker allow-list: %w", err)
	}
	return re, nil
}

// planRefs extracts every reference an accepted plan table row makes.
func planRefs(path string, content []byte, row *regexp.Regexp) []Reference {
	var refs []Reference

	for _, m := range row.FindAllSubmatchIndex(content, -1) {
		refs = append(refs, Reference{
			File: path,
			Line: lineAt(content, m[2]),
			ID:   string(content[m[2]:m[3]]),
			Kind: KindPlan,
		})
	}

	return refs
}

// lineAt returns the 1-based line number of byte offset off in content.
func lineAt(content []byte, off int) int {
	return 1 + bytes.Count(content[:off], []byte{'\n'})
}
