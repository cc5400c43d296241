package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/bindcheck/internal/cli/config"
	"github.com/leapstack-labs/bindcheck/internal/cli/output"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the shared dependencies for a command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	catalogDir := getEnvOrDefault("BINDCHECK_CATALOG_DIR", config.DefaultCatalogDir)
	manifestsDir := getEnvOrDefault("BINDCHECK_MANIFESTS_DIR", config.DefaultManifestsDir)
	specsDir := getEnvOrDefault("BINDCHECK_SPECS_DIR", config.DefaultSpecsDir)
	planFilename := getEnvOrDefault("BINDCHECK_PLAN_FILENAME", config.DefaultPlanFilename)
	planMarkers := config.DefaultPlanMarkers()
	if v := os.Getenv("BINDCHECK_PLAN_MARKERS"); v != "" {
		planMarkers = strings.Split(v, ",")
	}
	verbose := os.Getenv("BINDCHECK_VERBOSE") == "true"
	outputFormat := os.Getenv("BINDCHECK_OUTPUT")

	return &config.Config{
		CatalogDir:   catalogDir,
		ManifestsDir: manifestsDir,
		SpecsDir:     specsDir,
		PlanFilename: planFilename,
		PlanMarkers:  planMarkers,
		Verbose:      verbose,
		OutputFormat: outputFormat,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// relToRoot rewrites path relative to the project root for display.
// Paths outside the root are returned unchanged.
func relToRoot(path, root string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
