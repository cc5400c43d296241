package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/bindcheck/internal/binding"
	"github.com/leapstack-labs/bindcheck/internal/catalog"
	"github.com/leapstack-labs/bindcheck/internal/cli/config"
	"github.com/leapstack-labs/bindcheck/internal/cli/output"
	"github.com/leapstack-labs/bindcheck/internal/cli/testutil"
	"github.com/leapstack-labs/bindcheck/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCheckOutput_Pass(t *testing.T) {
	ids := catalog.NewIDSet()
	ids.Add("retry-backoff")
	loadRes := &catalog.LoadResult{IDs: ids, IndexFiles: 1, PatternFiles: 1}

	refs := []scan.Reference{
		{File: "/proj/manifests/a.yaml", Line: 3, ID: "retry-backoff", Kind: scan.KindManifest},
	}
	scanRes := &scan.Result{Refs: refs, ManifestFiles: 1}
	verdict := binding.Reconcile(refs, ids)

	out := buildCheckOutput(loadRes, scanRes, verdict, "/proj", 5*time.Millisecond)

	assert.Equal(t, "pass", out.Status)
	assert.Equal(t, 1, out.CatalogIDs)
	assert.Equal(t, 1, out.ReferencesChecked)
	assert.Empty(t, out.Failures)
	assert.Empty(t, out.AvailablePreview)
	assert.NotEmpty(t, out.RunID)
}

func TestBuildCheckOutput_FailureTruncatesPreview(t *testing.T) {
	ids := catalog.NewIDSet()
	for i := 0; i < 25; i++ {
		ids.Add(fmt.Sprintf("pattern-%02d", i))
	}

	refs := []scan.Reference{
		{File: "/proj/manifests/a.yaml", Line: 7, ID: "ghost", Kind: scan.KindManifest},
	}
	verdict := binding.Reconcile(refs, ids)

	out := buildCheckOutput(&catalog.LoadResult{IDs: ids}, &scan.Result{Refs: refs}, verdict, "/proj", time.Millisecond)

	assert.Equal(t, "fail", out.Status)
	require.Len(t, out.Failures, 1)
	assert.Equal(t, "ghost", out.Failures[0].ID)
	assert.Equal(t, filepath.Join("manifests", "a.yaml"), out.Failures[0].File)
	assert.Equal(t, 7, out.Failures[0].Line)
	assert.Equal(t, scan.KindManifest, out.Failures[0].Source)
	assert.Len(t, out.AvailablePreview, availablePreviewCap)
	assert.Equal(t, "pattern-00", out.AvailablePreview[0])
	assert.Equal(t, 5, out.MorePatterns)
}

func TestRenderCheckText(t *testing.T) {
	t.Run("failure report", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeText, false)
		out := &output.CheckOutput{
			Status:            "fail",
			CatalogIDs:        2,
			ReferencesChecked: 3,
			Failures: []output.CheckFailure{
				{ID: "ghost", File: "manifests/app.yaml", Line: 12, Source: "manifest"},
			},
			AvailablePreview: []string{"circuit-breaker", "retry-backoff"},
		}

		renderCheckText(tr.Renderer, out)

		want := "[ERROR] Unknown pattern IDs found:\n" +
			"  - 'ghost' in manifests/app.yaml:12\n" +
			"\n" +
			"Available pattern IDs:\n" +
			"  - circuit-breaker\n" +
			"  - retry-backoff\n"
		assert.Equal(t, want, tr.Output())
	})

	t.Run("failure report notes truncated preview", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeText, false)
		out := &output.CheckOutput{
			Status:           "fail",
			Failures:         []output.CheckFailure{{ID: "ghost", File: "x.yaml", Line: 1, Source: "manifest"}},
			AvailablePreview: []string{"aaa"},
			MorePatterns:     5,
		}

		renderCheckText(tr.Renderer, out)

		testutil.AssertContains(t, tr.Output(), "  ... and 5 more\n")
	})

	t.Run("all references valid", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeText, false)
		out := &output.CheckOutput{Status: "pass", ReferencesChecked: 3}

		renderCheckText(tr.Renderer, out)

		assert.Equal(t, "[OK] All 3 pattern ID references are valid.\n", tr.Output())
	})

	t.Run("nothing to validate", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeText, false)
		out := &output.CheckOutput{Status: "pass"}

		renderCheckText(tr.Renderer, out)

		assert.Equal(t, "[OK] No pattern ID references found to validate.\n", tr.Output())
	})
}

func TestRenderCheckMarkdown(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	out := &output.CheckOutput{
		Status:            "fail",
		CatalogIDs:        2,
		ReferencesChecked: 3,
		Failures: []output.CheckFailure{
			{ID: "ghost", File: "manifests/app.yaml", Line: 12, Source: "manifest"},
		},
		AvailablePreview: []string{"circuit-breaker", "retry-backoff"},
	}

	renderCheckMarkdown(tr.Renderer, out)

	s := tr.Output()
	testutil.AssertContains(t, s, "# Catalog Binding Check")
	testutil.AssertContains(t, s, "- **Status**: fail")
	testutil.AssertContains(t, s, "| `ghost` | manifests/app.yaml | 12 | Manifest |")
	testutil.AssertContains(t, s, "## Available Pattern IDs")
	testutil.AssertValidMarkdown(t, s)
	testutil.AssertNoANSI(t, s)
}

func TestCheckCommand(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	t.Run("valid project passes", func(t *testing.T) {
		dir := testutil.SetupTestProject(t)
		testutil.SetProjectEnv(t, dir)

		cmd := NewCheckCommand()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--format", "text"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "[OK] All 3 pattern ID references are valid.")
	})

	t.Run("unknown reference fails with exit error", func(t *testing.T) {
		dir := testutil.SetupTestProject(t)
		bad := "service: billing\npatterns:\n  - id: ghost-pattern\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "manifests", "billing.yaml"), []byte(bad), 0600))
		testutil.SetProjectEnv(t, dir)

		cmd := NewCheckCommand()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--format", "text"})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, buf.String(), "[ERROR] Unknown pattern IDs found:")
		assert.Contains(t, buf.String(), "'ghost-pattern'")
		assert.Contains(t, buf.String(), "Available pattern IDs:")
	})

	t.Run("json output decodes", func(t *testing.T) {
		dir := testutil.SetupTestProject(t)
		testutil.SetProjectEnv(t, dir)

		cmd := NewCheckCommand()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--format", "json"})

		require.NoError(t, cmd.Execute())

		var decoded output.CheckOutput
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "pass", decoded.Status)
		assert.Equal(t, 2, decoded.CatalogIDs)
		assert.Equal(t, 3, decoded.ReferencesChecked)
		assert.NotEmpty(t, decoded.RunID)
	})

	t.Run("empty project passes vacuously", func(t *testing.T) {
		dir := t.TempDir()
		testutil.SetProjectEnv(t, dir)

		cmd := NewCheckCommand()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--format", "text"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "[OK] No pattern ID references found to validate.")
	})

	t.Run("non-accepted plan rows never fail", func(t *testing.T) {
		dir := testutil.SetupTestProject(t)
		later := filepath.Join(dir, "specs", "later")
		require.NoError(t, os.MkdirAll(later, 0750))
		row := "| Later | totally-unknown-id | rejected |\n"
		require.NoError(t, os.WriteFile(filepath.Join(later, "plan.md"), []byte(row), 0600))
		testutil.SetProjectEnv(t, dir)

		cmd := NewCheckCommand()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--format", "text"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "[OK] All 3 pattern ID references are valid.")
	})

	t.Run("missing catalog makes every reference unknown", func(t *testing.T) {
		dir := testutil.SetupTestProject(t)
		require.NoError(t, os.RemoveAll(filepath.Join(dir, "catalog")))
		testutil.SetProjectEnv(t, dir)

		cmd := NewCheckCommand()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--format", "text"})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, buf.String(), "[ERROR] Unknown pattern IDs found:")
	})

	t.Run("invalid format flag errors", func(t *testing.T) {
		dir := testutil.SetupTestProject(t)
		testutil.SetProjectEnv(t, dir)

		cmd := NewCheckCommand()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"--format", "yaml"})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid output mode")
	})

	t.Run("verbose prints catalog inventory", func(t *testing.T) {
		dir := testutil.SetupTestProject(t)
		testutil.SetProjectEnv(t, dir)
		t.Setenv("BINDCHECK_VERBOSE", "true")

		cmd := NewCheckCommand()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--format", "text"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "[INFO] Found 2 valid pattern IDs in catalog")
		assert.Contains(t, buf.String(), "       - circuit-breaker")
		assert.Contains(t, buf.String(), "[INFO] Found 3 pattern ID references")
	})
}

func TestCheckCommandMetadata(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("format"), "--format flag should exist")
}
