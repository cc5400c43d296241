package commands

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/bindcheck/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new bindcheck project",
		Long: `Initialize a new bindcheck project with default directory structure and configuration.

This creates:
  - catalog/ directory with an index.json and per-pattern YAML files
  - bindcheck.yaml configuration file

Use --example to also scaffold manifests/ and specs/ with sample
references that demonstrate how binding validation works.`,
		Example: `  # Initialize in current directory
  bindcheck init

  # Initialize with a full working example
  bindcheck init --example

  # Initialize in a new directory
  bindcheck init my-catalog --example

  # Force overwrite existing config
  bindcheck init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			// Create renderer
			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			if example {
				return runInitExample(r, dir, force)
			}
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Scaffold sample manifests and specs alongside the catalog")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := dir + "/bindcheck.yaml"
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("bindcheck.yaml already exists. Use --force to overwrite")
	}

	if err := copyTemplate("minimal", dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	files, _ := listTemplateFiles("minimal")
	for _, f := range files {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success("Bindcheck project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Add patterns to catalog/patterns/ and list them in catalog/index.json")
	r.Println("  2. Reference pattern IDs from manifests/ and spec plan tables")
	r.Println("  3. Run 'bindcheck check' to verify every reference resolves")
	r.Println("  4. Run 'bindcheck list' to see catalog pattern IDs")

	return nil
}

func runInitExample(r *output.Renderer, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := dir + "/bindcheck.yaml"
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("bindcheck.yaml already exists. Use --force to overwrite")
	}

	if err := copyTemplate("example", dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	files, _ := listTemplateFiles("example")
	groups := groupTemplateFiles(files)

	r.Header(2, "Configuration")
	for _, f := range groups["config"] {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Header(2, "Catalog")
	for _, f := range groups["catalog"] {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Header(2, "Manifests")
	for _, f := range groups["manifests"] {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Header(2, "Specs")
	for _, f := range groups["specs"] {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success("Bindcheck project initialized with example data!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  bindcheck check    Verify every pattern reference resolves")
	r.Println("  bindcheck list     View catalog pattern IDs")
	r.Println("  bindcheck refs     Audit reference provenance")
	r.Println("  bindcheck watch    Re-check whenever files change")

	return nil
}
