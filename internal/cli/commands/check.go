package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/bindcheck/internal/binding"
	"github.com/leapstack-labs/bindcheck/internal/catalog"
	"github.com/leapstack-labs/bindcheck/internal/cli/output"
	"github.com/leapstack-labs/bindcheck/internal/scan"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// availablePreviewCap caps how many catalog IDs a failure report lists.
const availablePreviewCap = 20

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format string // Output format: text, json
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify pattern ID references against the catalog",
		Long: `Verify that every pattern ID referenced by manifests and spec plan
tables exists in the pattern catalog.

The catalog's authoritative ID set is read from catalog/index.json and the
files under catalog/patterns/. References are collected from manifests/**/*.yaml
and from accepted rows of specs/**/plan.md binding tables. Any reference that
does not resolve is reported with its file and line, and the command exits
with code 1.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check the project in the current directory
  bindcheck check

  # Check a project elsewhere on disk
  bindcheck check --project-dir ./sites/payments

  # Output as JSON
  bindcheck check --format json

  # Accept additional plan status markers
  bindcheck check --marker matched --marker approved`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
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

	started := time.Now()

	loadRes := catalog.Load(cfg.CatalogDir, cmdCtx.Logger)
	scanRes, err := scan.Collect(scan.Options{
		ManifestsDir: cfg.ManifestsDir,
		SpecsDir:     cfg.SpecsDir,
		PlanFilename: cfg.PlanFilename,
		PlanMarkers:  cfg.PlanMarkers,
	}, cmdCtx.Logger)
	if err != nil {
		return err
	}

	verdict := binding.Reconcile(scanRes.Refs, loadRes.IDs)
	checkOutput := buildCheckOutput(loadRes, scanRes, verdict, cfg.ProjectRoot, time.Since(started))

	// Render based on mode
	effectiveMode := r.EffectiveMode()
	if cfg.Verbose && effectiveMode == output.ModeText {
		renderCheckVerboseInfo(r, loadRes, scanRes)
	}

	switch effectiveMode {
	case output.ModeJSON:
		if err := r.JSON(checkOutput); err != nil {
			return err
		}
	case output.ModeMarkdown:
		renderCheckMarkdown(r, checkOutput)
	default:
		renderCheckText(r, checkOutput)
	}

	// Exit with code 1 if unresolved references remain
	if !verdict.OK() {
		return fmt.Errorf("unknown pattern IDs found")
	}
	return nil
}

func buildCheckOutput(loadRes *catalog.LoadResult, scanRes *scan.Result, verdict *binding.Verdict, projectRoot string, elapsed time.Duration) *output.CheckOutput {
	status := "pass"
	if !verdict.OK() {
		status = "fail"
	}

	out := &output.CheckOutput{
		RunID:             uuid.New().String(),
		Status:            status,
		CatalogIDs:        loadRes.IDs.Len(),
		ReferencesChecked: verdict.Checked,
		Failures:          make([]output.CheckFailure, 0, len(verdict.Failures)),
		Diagnostics:       len(loadRes.Errors) + len(scanRes.Errors),
		DurationMS:        elapsed.Milliseconds(),
	}

	for _, f := range verdict.Failures {
		out.Failures = append(out.Failures, output.CheckFailure{
			ID:     f.ID,
			File:   relToRoot(f.File, projectRoot),
			Line:   f.Line,
			Source: f.Kind,
		})
	}

	// The preview only accompanies failures, where it helps spot typos
	if !verdict.OK() {
		sorted := loadRes.IDs.Sorted()
		if len(sorted) > availablePreviewCap {
			out.AvailablePreview = sorted[:availablePreviewCap]
			out.MorePatterns = len(sorted) - availablePreviewCap
		} else {
			out.AvailablePreview = sorted
		}
	}

	return out
}

// renderCheckVerboseInfo prints the catalog and reference counts ahead of
// the result, mirroring the report layout long used by CI scripts.
func renderCheckVerboseInfo(r *output.Renderer, loadRes *catalog.LoadResult, scanRes *scan.Result) {
	r.Printf("[INFO] Found %d valid pattern IDs in catalog\n", loadRes.IDs.Len())
	for _, id := range loadRes.IDs.Sorted() {
		r.Printf("       - %s\n", id)
	}
	r.Println("")
	r.Printf("[INFO] Found %d pattern ID references\n", len(scanRes.Refs))
	r.Println("")
}

func renderCheckText(r *output.Renderer, out *output.CheckOutput) {
	styles := r.Styles()

	if len(out.Failures) > 0 {
		r.Println(styles.Error.Render("[ERROR] Unknown pattern IDs found:"))
		for _, f := range out.Failures {
			r.Printf("  - '%s' in %s:%d\n", f.ID, f.File, f.Line)
		}
		r.Println("")
		r.Println("Available pattern IDs:")
		for _, id := range out.AvailablePreview {
			r.Printf("  - %s\n", id)
		}
		if out.MorePatterns > 0 {
			r.Printf("  ... and %d more\n", out.MorePatterns)
		}
		return
	}

	if out.ReferencesChecked > 0 {
		r.Success(fmt.Sprintf("[OK] All %d pattern ID references are valid.", out.ReferencesChecked))
	} else {
		r.Success("[OK] No pattern ID references found to validate.")
	}
}

func renderCheckMarkdown(r *output.Renderer, out *output.CheckOutput) {
	r.Println(output.FormatHeader(1, "Catalog Binding Check"))
	r.Println("")
	r.Println(output.FormatKeyValue("Status", out.Status))
	r.Println(output.FormatKeyValue("Catalog patterns", fmt.Sprintf("%d", out.CatalogIDs)))
	r.Println(output.FormatKeyValue("References checked", fmt.Sprintf("%d", out.ReferencesChecked)))
	if out.Diagnostics > 0 {
		r.Println(output.FormatKeyValue("Diagnostics", fmt.Sprintf("%d", out.Diagnostics)))
	}
	r.Println("")

	if len(out.Failures) == 0 {
		if out.ReferencesChecked > 0 {
			r.Printf("All %d pattern ID references are valid.\n", out.ReferencesChecked)
		} else {
			r.Println("No pattern ID references found to validate.")
		}
		return
	}

	titleCaser := cases.Title(language.English)

	r.Println(output.FormatHeader(2, "Unknown Pattern IDs"))
	r.Println("")
	r.Println("| ID | File | Line | Source |")
	r.Println("| --- | --- | --- | --- |")
	for _, f := range out.Failures {
		r.Printf("| `%s` | %s | %d | %s |\n", f.ID, f.File, f.Line, titleCaser.String(f.Source))
	}
	r.Println("")

	r.Println(output.FormatHeader(2, "Available Pattern IDs"))
	r.Println("")
	for _, id := range out.AvailablePreview {
		r.Printf("- `%s`\n", id)
	}
	if out.MorePatterns > 0 {
		r.Println("")
		r.Printf("... and %d more\n", out.MorePatterns)
	}
}
