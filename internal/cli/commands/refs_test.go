package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/bindcheck/internal/cli/config"
	"github.com/leapstack-labs/bindcheck/internal/cli/output"
	"github.com/leapstack-labs/bindcheck/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefsCommand(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	t.Run("json decodes with provenance", func(t *testing.T) {
		dir := testutil.SetupTestProject(t)
		testutil.SetProjectEnv(t, dir)
		t.Setenv("BINDCHECK_OUTPUT", "json")

		cmd := NewRefsCommand()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)

		require.NoError(t, cmd.Execute())

		var decoded output.RefsOutput
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded.References, 3)
		assert.Equal(t, 3, decoded.Summary.Total)
		assert.Equal(t, 1, decoded.Summary.ManifestFiles)
		assert.Equal(t, 1, decoded.Summary.PlanFiles)

		ids := make(map[string]int)
		for _, ref := range decoded.References {
			ids[ref.ID]++
			assert.NotEmpty(t, ref.File)
			assert.Greater(t, ref.Line, 0)
		}
		assert.Equal(t, 2, ids["retry-backoff"], "manifest and plan each reference retry-backoff")
		assert.Equal(t, 1, ids["circuit-breaker"])
	})

	t.Run("text renders table", func(t *testing.T) {
		dir := testutil.SetupTestProject(t)
		testutil.SetProjectEnv(t, dir)

		cmd := NewRefsCommand()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--format", "text"})

		require.NoError(t, cmd.Execute())

		s := buf.String()
		assert.Contains(t, s, "retry-backoff")
		assert.Contains(t, s, "Manifest")
		assert.Contains(t, s, "Plan")
		assert.Contains(t, s, "(3 references)")
	})

	t.Run("markdown renders table rows", func(t *testing.T) {
		dir := testutil.SetupTestProject(t)
		testutil.SetProjectEnv(t, dir)

		cmd := NewRefsCommand()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs([]string{"--format", "markdown"})

		require.NoError(t, cmd.Execute())

		s := buf.String()
		testutil.AssertContains(t, s, "# Pattern References (3 total)")
		testutil.AssertContains(t, s, "| Pattern ID | File | Line | Source |")
		testutil.AssertContains(t, s, "## Summary")
		testutil.AssertValidMarkdown(t, s)
	})

	t.Run("empty project reports nothing found", func(t *testing.T) {
		dir := t.TempDir()
		testutil.SetProjectEnv(t, dir)
		t.Setenv("BINDCHECK_OUTPUT", "text")

		cmd := NewRefsCommand()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(buf)

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "No pattern ID references found.")
	})
}
