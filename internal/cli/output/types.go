package output

// Shared JSON output shapes for commands. Kept here so check and watch
// render the same report structure.

// CheckFailure is one unresolved reference in a check report.
type CheckFailure struct {
	ID     string `json:"id"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Source string `json:"source"`
}

// CheckOutput is the JSON shape of a check run.
type CheckOutput struct {
	RunID             string         `json:"run_id"`
	Status            string         `json:"status"` // "pass", "fail"
	CatalogIDs        int            `json:"catalog_ids"`
	ReferencesChecked int            `json:"references_checked"`
	Failures          []CheckFailure `json:"failures"`
	AvailablePreview  []string       `json:"available_preview,omitempty"`
	MorePatterns      int            `json:"more_patterns,omitempty"`
	Diagnostics       int            `json:"diagnostics,omitempty"`
	DurationMS        int64          `json:"duration_ms"`
}

// ListOutput is the JSON shape of the list command.
type ListOutput struct {
	Patterns []string    `json:"patterns"`
	Summary  ListSummary `json:"summary"`
}

// ListSummary contains catalog-level statistics.
type ListSummary struct {
	Total        int `json:"total"`
	IndexFiles   int `json:"index_files"`
	PatternFiles int `json:"pattern_files"`
	Errors       int `json:"errors"`
}

// RefInfo describes one collected reference in refs output.
type RefInfo struct {
	ID     string `json:"id"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Source string `json:"source"`
}

// RefsOutput is the JSON shape of the refs command.
type RefsOutput struct {
	References []RefInfo   `json:"references"`
	Summary    RefsSummary `json:"summary"`
}

// RefsSummary contains scan-level statistics.
type RefsSummary struct {
	Total         int `json:"total"`
	ManifestFiles int `json:"manifest_files"`
	PlanFiles     int `json:"plan_files"`
	Errors        int `json:"errors"`
}
