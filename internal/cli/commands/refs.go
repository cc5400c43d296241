package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/bindcheck/internal/cli/output"
	"github.com/leapstack-labs/bindcheck/internal/scan"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RefsOptions holds options for the refs command.
type RefsOptions struct {
	Format string // Output format: text, markdown, json
}

// NewRefsCommand creates the refs command.
func NewRefsCommand() *cobra.Command {
	opts := &RefsOptions{}
	cmd := &cobra.Command{
		Use:   "refs",
		Short: "List pattern ID references found in manifests and specs",
		Long: `List every pattern ID reference collected from manifest YAML files and
from accepted rows of spec plan tables, with the file and line each one
came from.

Useful for auditing where a pattern is consumed before renaming or
retiring it.

Use --format to override the format: text, markdown, json`,
		Example: `  # Show all references with provenance
  bindcheck refs

  # References as JSON (for scripts)
  bindcheck refs --format json

  # Include rows marked approved as well as matched
  bindcheck refs --marker matched --marker approved`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRefs(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runRefs(cmd *cobra.Command, opts *RefsOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		mode, err := output.ParseMode(opts.Format)
		if err != nil {
			return err
		}
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
	}

	scanRes, err := scan.Collect(scan.Options{
		ManifestsDir: cfg.ManifestsDir,
		SpecsDir:     cfg.SpecsDir,
		PlanFilename: cfg.PlanFilename,
		PlanMarkers:  cfg.PlanMarkers,
	}, cmdCtx.Logger)
	if err != nil {
		return err
	}

	refsOutput := buildRefsOutput(scanRes, cfg.ProjectRoot)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(refsOutput)
	case output.ModeMarkdown:
		renderRefsMarkdown(r, refsOutput)
		return nil
	default:
		renderRefsText(r, refsOutput)
		return nil
	}
}

func buildRefsOutput(scanRes *scan.Result, projectRoot string) *output.RefsOutput {
	out := &output.RefsOutput{
		References: make([]output.RefInfo, 0, len(scanRes.Refs)),
		Summary: output.RefsSummary{
			Total:         len(scanRes.Refs),
			ManifestFiles: scanRes.ManifestFiles,
			PlanFiles:     scanRes.PlanFiles,
			Errors:        len(scanRes.Errors),
		},
	}

	for _, ref := range scanRes.Refs {
		out.References = append(out.References, output.RefInfo{
			ID:     ref.ID,
			File:   relToRoot(ref.File, projectRoot),
			Line:   ref.Line,
			Source: ref.Kind,
		})
	}

	return out
}

// renderRefsText outputs references as a styled table.
func renderRefsText(r *output.Renderer, out *output.RefsOutput) {
	if out.Summary.Total == 0 {
		r.Muted("No pattern ID references found.")
		return
	}

	titleCaser := cases.Title(language.English)

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Pattern ID", "File", "Line", "Source"})
	for _, ref := range out.References {
		t.AppendRow(table.Row{ref.ID, ref.File, ref.Line, titleCaser.String(ref.Source)})
	}
	t.Render()

	r.Printf("(%d references)\n", out.Summary.Total)
}

// renderRefsMarkdown outputs references in markdown format.
func renderRefsMarkdown(r *output.Renderer, out *output.RefsOutput) {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Pattern References (%d total)", out.Summary.Total)))
	r.Println("")

	if out.Summary.Total == 0 {
		r.Println("No pattern ID references found.")
		return
	}

	titleCaser := cases.Title(language.English)

	r.Println("| Pattern ID | File | Line | Source |")
	r.Println("| --- | --- | --- | --- |")
	for _, ref := range out.References {
		r.Printf("| %s | %s | %d | %s |\n", ref.ID, ref.File, ref.Line, titleCaser.String(ref.Source))
	}
	r.Println("")

	r.Println(output.FormatHeader(2, "Summary"))
	r.Println(output.FormatKeyValue("Manifest files", fmt.Sprintf("%d", out.Summary.ManifestFiles)))
	r.Println(output.FormatKeyValue("Plan files", fmt.Sprintf("%d", out.Summary.PlanFiles)))
	if out.Summary.Errors > 0 {
		r.Println(output.FormatKeyValue("Scan errors", fmt.Sprintf("%d", out.Summary.Errors)))
	}
}
