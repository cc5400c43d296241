package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bindcheck/internal/testutil"
)

// writeScanFile writes content under dir, creating parent directories.
func writeScanFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// TestCollect_WalkOrder tests the fixed root order and lexical file order.
func TestCollect_WalkOrder(t *testing.T) {
	root := t.TempDir()
	writeScanFile(t, root, "manifests/a.yaml", "- id: aa-first\n")
	writeScanFile(t, root, "manifests/b/nested.yml", "pattern_id: bb-second\n")
	writeScanFile(t, root, "specs/feat/plan.md", "| f | cc-third | matched |\n")
	writeScanFile(t, root, "specs/feat/notes.md", "| f | dd-ignored | matched |\n")

	result, err := Collect(Options{
		ManifestsDir: filepath.Join(root, "manifests"),
		SpecsDir:     filepath.Join(root, "specs"),
	}, testutil.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"aa-first", "bb-second", "cc-third"}, refIDs(result.Refs))
	assert.Equal(t, 2, result.ManifestFiles)
	assert.Equal(t, 1, result.PlanFiles)
	assert.False(t, result.HasErrors())
}

// TestCollect_Deterministic tests that two scans of the same tree agree.
func TestCollect_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeScanFile(t, root, "manifests/one.yaml", "- id: ref-one\n- id: ref-two\n")
	writeScanFile(t, root, "manifests/two.yaml", "provider: ref-three\n")
	writeScanFile(t, root, "specs/plan.md", "| a | ref-four | selected |\n")

	opts := Options{
		ManifestsDir: filepath.Join(root, "manifests"),
		SpecsDir:     filepath.Join(root, "specs"),
	}

	first, err := Collect(opts, nil)
	require.NoError(t, err)
	second, err := Collect(opts, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Refs, second.Refs)
}

// TestCollect_MissingRoots tests that absent roots yield an empty result.
func TestCollect_MissingRoots(t *testing.T) {
	root := t.TempDir()

	result, err := Collect(Options{
		ManifestsDir: filepath.Join(root, "manifests"),
		SpecsDir:     filepath.Join(root, "specs"),
	}, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Refs)
	assert.Equal(t, 0, result.ManifestFiles)
	assert.Equal(t, 0, result.PlanFiles)
	assert.False(t, result.HasErrors())
}

// TestCollect_EmptyDirsConfigured tests that empty root options scan nothing.
func TestCollect_EmptyDirsConfigured(t *testing.T) {
	result, err := Collect(Options{}, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Refs)
}

// TestCollect_CustomPlanFilename tests the plan filename override.
func TestCollect_CustomPlanFilename(t *testing.T) {
	root := t.TempDir()
	writeScanFile(t, root, "specs/feature.plan.md", "| a | custom-name-ref | matched |\n")
	writeScanFile(t, root, "specs/plan.md", "| a | default-name-ref | matched |\n")

	result, err := Collect(Options{
		SpecsDir:     filepath.Join(root, "specs"),
		PlanFilename: "feature.plan.md",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"custom-name-ref"}, refIDs(result.Refs))
	assert.Equal(t, 1, result.PlanFiles)
}

// TestCollect_CustomMarkers tests the marker allow-list override.
func TestCollect_CustomMarkers(t *testing.T) {
	root := t.TempDir()
	writeScanFile(t, root, "specs/plan.md",
		"| a | approved-ref | approved |\n| b | matched-ref | matched |\n")

	result, err := Collect(Options{
		SpecsDir:    filepath.Join(root, "specs"),
		PlanMarkers: []string{"approved"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"approved-ref"}, refIDs(result.Refs))
}

// TestCollect_UnusableMarkers tests the one hard failure: a blank allow-list.
func TestCollect_UnusableMarkers(t *testing.T) {
	_, err := Collect(Options{PlanMarkers: []string{"   "}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allow-list is empty")
}

// TestCollect_NonYAMLIgnored tests that unrelated manifest files are skipped.
func TestCollect_NonYAMLIgnored(t *testing.T) {
	root := t.TempDir()
	writeScanFile(t, root, "manifests/readme.md", "- id: not-collected\n")
	writeScanFile(t, root, "manifests/real.yaml", "- id: is-collected\n")

	result, err := Collect(Options{ManifestsDir: filepath.Join(root, "manifests")}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"is-collected"}, refIDs(result.Refs))
	assert.Equal(t, 1, result.ManifestFiles)
}

// TestResult_Summary tests the one-line summary format.
func TestResult_Summary(t *testing.T) {
	root := t.TempDir()
	writeScanFile(t, root, "manifests/m.yaml", "- id: solo-ref\n")

	result, err := Collect(Options{ManifestsDir: filepath.Join(root, "manifests")}, nil)
	require.NoError(t, err)

	summary := result.Summary()
	assert.Contains(t, summary, "References: 1")
	assert.Contains(t, summary, "1 manifest files")
}
