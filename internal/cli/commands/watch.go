package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leapstack-labs/bindcheck/internal/binding"
	"github.com/leapstack-labs/bindcheck/internal/catalog"
	"github.com/leapstack-labs/bindcheck/internal/cli/output"
	"github.com/leapstack-labs/bindcheck/internal/scan"
	"github.com/leapstack-labs/bindcheck/internal/watch"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run binding validation whenever project files change",
		Long: `Watch the catalog, manifests, and specs directories and re-run binding
validation whenever a relevant file changes.

Unlike check, watch stays alive across failing runs so it can be left
running while editing the catalog or specs. Press Ctrl+C to stop.`,
		Example: `  # Watch the project in the current directory
  bindcheck watch

  # Watch a project elsewhere on disk
  bindcheck watch --project-dir ./sites/payments`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd)
		},
	}

	return cmd
}

func runWatch(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	if err := cfg.ValidateDirectories(); err != nil {
		return err
	}

	runOnce := func() {
		started := time.Now()

		loadRes := catalog.Load(cfg.CatalogDir, cmdCtx.Logger)
		scanRes, err := scan.Collect(scan.Options{
			ManifestsDir: cfg.ManifestsDir,
			SpecsDir:     cfg.SpecsDir,
			PlanFilename: cfg.PlanFilename,
			PlanMarkers:  cfg.PlanMarkers,
		}, cmdCtx.Logger)
		if err != nil {
			r.Warning(fmt.Sprintf("scan failed: %v", err))
			return
		}

		verdict := binding.Reconcile(scanRes.Refs, loadRes.IDs)
		checkOutput := buildCheckOutput(loadRes, scanRes, verdict, cfg.ProjectRoot, time.Since(started))

		switch r.EffectiveMode() {
		case output.ModeJSON:
			_ = r.JSON(checkOutput)
		case output.ModeMarkdown:
			renderCheckMarkdown(r, checkOutput)
		default:
			renderCheckText(r, checkOutput)
		}
	}

	// Initial run
	runOnce()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	w := watch.New(watch.Options{
		Dirs: []string{cfg.CatalogDir, cfg.ManifestsDir, cfg.SpecsDir},
	}, func(path string) {
		r.Println("")
		r.Muted(fmt.Sprintf("Change detected: %s", relToRoot(path, cfg.ProjectRoot)))
		runOnce()
	}, cmdCtx.Logger)

	r.Println("")
	r.Muted("Watching for changes. Press Ctrl+C to stop.")

	return w.Run(ctx)
}
