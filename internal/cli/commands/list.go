package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/bindcheck/internal/catalog"
	"github.com/leapstack-labs/bindcheck/internal/cli/output"
	"github.com/spf13/cobra"
)

// ListOptions holds options for the list command.
type ListOptions struct {
	Format string // Output format: text, markdown, json
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all pattern IDs in the catalog",
		Long: `List every pattern ID the catalog declares, from index files and
per-pattern YAML files combined.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --format to override: text, markdown, json`,
		Example: `  # List catalog patterns (auto-detect output format)
  bindcheck list

  # List patterns as JSON
  bindcheck list --format json

  # List patterns as Markdown (for agents/scripts)
  bindcheck list --format markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
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

	if err := cfg.ValidateDirectories(); err != nil {
		return err
	}

	loadRes := catalog.Load(cfg.CatalogDir, cmdCtx.Logger)
	listOutput := buildListOutput(loadRes)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(listOutput)
	case output.ModeMarkdown:
		renderListMarkdown(r, listOutput)
		return nil
	default:
		renderListText(r, listOutput, loadRes)
		return nil
	}
}

func buildListOutput(loadRes *catalog.LoadResult) *output.ListOutput {
	return &output.ListOutput{
		Patterns: loadRes.IDs.Sorted(),
		Summary: output.ListSummary{
			Total:        loadRes.IDs.Len(),
			IndexFiles:   loadRes.IndexFiles,
			PatternFiles: loadRes.PatternFiles,
			Errors:       len(loadRes.Errors),
		},
	}
}

// renderListText outputs patterns as a styled table.
func renderListText(r *output.Renderer, out *output.ListOutput, loadRes *catalog.LoadResult) {
	r.Header(1, fmt.Sprintf("Catalog Patterns (%d total)", out.Summary.Total))

	if out.Summary.Total > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(r.Writer())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Pattern ID"})
		for i, id := range out.Patterns {
			t.AppendRow(table.Row{i + 1, id})
		}
		t.Render()
	}

	if out.Summary.Errors > 0 {
		r.Println("")
		for _, loadErr := range loadRes.Errors {
			r.Warning(fmt.Sprintf("%s: %s", loadErr.Path, loadErr.Message))
		}
	}
}

// renderListMarkdown outputs patterns in markdown format.
func renderListMarkdown(r *output.Renderer, out *output.ListOutput) {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Catalog Patterns (%d total)", out.Summary.Total)))
	r.Println("")

	for _, id := range out.Patterns {
		r.Printf("- %s\n", id)
	}
	r.Println("")

	r.Println(output.FormatHeader(2, "Summary"))
	r.Println(output.FormatKeyValue("Index files", fmt.Sprintf("%d", out.Summary.IndexFiles)))
	r.Println(output.FormatKeyValue("Pattern files", fmt.Sprintf("%d", out.Summary.PatternFiles)))
	if out.Summary.Errors > 0 {
		r.Println(output.FormatKeyValue("Parse errors", fmt.Sprintf("%d", out.Summary.Errors)))
	}
}
