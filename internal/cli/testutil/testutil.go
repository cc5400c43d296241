// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/bindcheck/internal/cli/output"
)

// SetupTestProject creates a temporary project with a small catalog and
// references that all resolve.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	// Create directories
	dirs := []string{
		filepath.Join(tmpDir, "catalog", "patterns"),
		filepath.Join(tmpDir, "manifests"),
		filepath.Join(tmpDir, "specs", "checkout"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	// Catalog index
	index := `{
  "version": 1,
  "patterns": [
    {"id": "retry-backoff", "name": "Retry with backoff", "file": "patterns/retry-backoff.yaml"},
    {"id": "circuit-breaker", "name": "Circuit breaker", "file": "patterns/circuit-breaker.yaml"}
  ]
}`
	if err := os.WriteFile(filepath.Join(tmpDir, "catalog", "index.json"),
		[]byte(index), 0644); err != nil {
		t.Fatalf("failed to create index.json: %v", err)
	}

	// Pattern files
	retry := `id: retry-backoff
name: Retry with backoff
summary: Retry transient failures with exponential backoff.
`
	if err := os.WriteFile(filepath.Join(tmpDir, "catalog", "patterns", "retry-backoff.yaml"),
		[]byte(retry), 0644); err != nil {
		t.Fatalf("failed to create retry-backoff.yaml: %v", err)
	}

	breaker := `id: circuit-breaker
name: Circuit breaker
summary: Stop calling a failing dependency until it recovers.
`
	if err := os.WriteFile(filepath.Join(tmpDir, "catalog", "patterns", "circuit-breaker.yaml"),
		[]byte(breaker), 0644); err != nil {
		t.Fatalf("failed to create circuit-breaker.yaml: %v", err)
	}

	// Manifest referencing both patterns
	manifest := `service: orders
patterns:
  - id: retry-backoff
defaults:
  provider: circuit-breaker
`
	if err := os.WriteFile(filepath.Join(tmpDir, "manifests", "orders.yaml"),
		[]byte(manifest), 0644); err != nil {
		t.Fatalf("failed to create orders.yaml: %v", err)
	}

	// Spec plan with one accepted row
	plan := `# Checkout plan

| Requirement | Pattern | Status |
| --- | --- | --- |
| Retry PSP calls | retry-backoff | matched |
| Future idea | circuit-breaker | proposed |
`
	if err := os.WriteFile(filepath.Join(tmpDir, "specs", "checkout", "plan.md"),
		[]byte(plan), 0644); err != nil {
		t.Fatalf("failed to create plan.md: %v", err)
	}

	return tmpDir
}

// SetProjectEnv points bindcheck environment configuration at the
// standard directories under dir.
func SetProjectEnv(t *testing.T, dir string) {
	t.Helper()

	t.Setenv("BINDCHECK_CATALOG_DIR", filepath.Join(dir, "catalog"))
	t.Setenv("BINDCHECK_MANIFESTS_DIR", filepath.Join(dir, "manifests"))
	t.Setenv("BINDCHECK_SPECS_DIR", filepath.Join(dir, "specs"))
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererAuto creates a new test renderer with auto mode detection.
// In tests, non-TTY defaults to markdown output.
func NewTestRendererAuto() *TestRenderer {
	return NewTestRenderer(output.ModeAuto, false)
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the combined stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Reset clears both output buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string %q does not contain expected %q", s, expected)
	}
}

// AssertNotContains checks that the string does not contain the substring.
func AssertNotContains(t *testing.T, s, unexpected string) {
	t.Helper()
	if strings.Contains(s, unexpected) {
		t.Errorf("string %q unexpectedly contains %q", s, unexpected)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and basic structure.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	// Check for balanced code fences
	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	// Check that headers have content
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}

// AssertOutputMode checks that the renderer output matches expected mode characteristics.
func AssertOutputMode(t *testing.T, tr *TestRenderer, expectedMode output.Mode) {
	t.Helper()

	combinedOutput := tr.Output() + tr.ErrorOutput()

	switch expectedMode {
	case output.ModeMarkdown:
		AssertNoANSI(t, combinedOutput)
	case output.ModeText:
		// Text mode may contain ANSI codes if TTY
	case output.ModeJSON:
		AssertNoANSI(t, combinedOutput)
	}
}
