package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBufferRenderer builds a renderer over fresh buffers.
func newBufferRenderer(isTTY bool, mode Mode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

// TestParseMode tests output mode validation.
func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"text", ModeText, false},
		{"markdown", ModeMarkdown, false},
		{"json", ModeJSON, false},
		{"yaml", "", true},
		{"TEXT", "", true},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid output mode")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// TestRenderer_EffectiveMode tests auto resolution against the TTY state.
func TestRenderer_EffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{"auto on tty is text", ModeAuto, true, ModeText},
		{"auto off tty is markdown", ModeAuto, false, ModeMarkdown},
		{"empty mode behaves as auto", "", false, ModeMarkdown},
		{"explicit text stays text", ModeText, false, ModeText},
		{"explicit json stays json", ModeJSON, true, ModeJSON},
		{"explicit markdown stays markdown", ModeMarkdown, true, ModeMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newBufferRenderer(tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

// TestRenderer_WarningGoesToStderr tests the out/err writer split.
func TestRenderer_WarningGoesToStderr(t *testing.T) {
	r, out, errOut := newBufferRenderer(false, ModeText)

	r.Println("to stdout")
	r.Warning("to stderr")

	assert.Contains(t, out.String(), "to stdout")
	assert.NotContains(t, out.String(), "to stderr")
	assert.Contains(t, errOut.String(), "to stderr")
}

// TestRenderer_NoANSIOffTTY tests that styling degrades to plain text.
func TestRenderer_NoANSIOffTTY(t *testing.T) {
	r, out, errOut := newBufferRenderer(false, ModeText)

	r.Success("all good")
	r.Muted("fine print")
	r.Warning("careful")
	r.Header(1, "Title")
	r.StatusLine("bindcheck.yaml", "success", "")
	r.StatusLine("catalog/index.json", "skipped", "exists")

	combined := out.String() + errOut.String()
	assert.NotContains(t, combined, "\x1b[")
	assert.Contains(t, out.String(), "✓ bindcheck.yaml")
	assert.Contains(t, out.String(), "- catalog/index.json exists")
}

// TestRenderer_HeaderMarkdown tests markdown heading output.
func TestRenderer_HeaderMarkdown(t *testing.T) {
	r, out, _ := newBufferRenderer(false, ModeMarkdown)

	r.Header(1, "Report")
	r.Header(2, "Details")

	assert.Contains(t, out.String(), "# Report")
	assert.Contains(t, out.String(), "## Details")
}

// TestRenderer_JSON tests indented JSON encoding.
func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newBufferRenderer(false, ModeJSON)

	require.NoError(t, r.JSON(CheckOutput{Status: "pass", Failures: []CheckFailure{}}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "pass", decoded["status"])
	assert.Contains(t, out.String(), "\n  \"status\"")
}

// TestFormatHelpers tests the markdown string helpers.
func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Top", FormatHeader(1, "Top"))
	assert.Equal(t, "### Deep", FormatHeader(3, "Deep"))
	assert.Equal(t, "# Clamped", FormatHeader(0, "Clamped"))
	assert.Equal(t, "###### Floor", FormatHeader(9, "Floor"))

	assert.Equal(t, "- **File**: manifests/app.yaml", FormatKeyValue("File", "manifests/app.yaml"))

	block := FormatCodeBlock("yaml", "id: sample\n")
	assert.Equal(t, "```yaml\nid: sample\n```", block)
}
