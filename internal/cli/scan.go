package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/classdex/classdex/internal/complete"
	"github.com/classdex/classdex/internal/config"
	"github.com/classdex/classdex/internal/extract"
	"github.com/classdex/classdex/internal/index"
	"github.com/classdex/classdex/internal/scan"
)

var (
	quietFlag bool
	watchFlag bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the workspace and build the class-name index",
	Long: `Scan walks the workspace, extracts CSS class names from every supported
markup, template, script and stylesheet file, and builds the deduplicated
class-name index.

The scan:
  - Discovers files under the workspace roots, applying ignore patterns
  - Extracts class names concurrently with a bounded worker budget
  - Isolates per-file failures (one bad file never aborts the scan)
  - Publishes the deduplicated snapshot atomically

Examples:
  # Scan the current directory
  classdex scan

  # Scan without progress output
  classdex scan --quiet

  # Keep running and re-scan on file changes
  classdex scan --watch
`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	scanCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and re-scan")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted!")
		cancel()
	}()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	orchestrator, err := wireOrchestrator(cfg, NewProgressNotifier(quietFlag))
	if err != nil {
		return err
	}

	stats, err := orchestrator.RunScan(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if quietFlag && stats != nil {
		fmt.Printf("Scan complete: %d unique class names from %d files\n",
			stats.UniqueDefinitions, stats.FilesDiscovered)
	}

	if !watchFlag {
		return nil
	}

	watcher, err := scan.NewWatcher(orchestrator, cfg.Paths.Roots)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	watcher.Start(ctx)
	defer watcher.Stop()

	if !quietFlag {
		log.Println("Watching for changes (Ctrl+C to stop)...")
	}
	<-ctx.Done()
	return nil
}

// buildOrchestrator loads configuration and wires the scan pipeline.
func buildOrchestrator(rootDir string, notifier scan.Notifier) (*scan.Orchestrator, error) {
	cfg, err := config.LoadFromDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return wireOrchestrator(cfg, notifier)
}

// wireOrchestrator assembles the scan pipeline from loaded configuration.
func wireOrchestrator(cfg *config.Config, notifier scan.Notifier) (*scan.Orchestrator, error) {
	registry := extract.DefaultRegistry()
	discovery, err := scan.NewDiscovery(cfg.Paths.Roots, registry, cfg.Paths.Ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to compile ignore patterns: %w", err)
	}

	return scan.NewOrchestrator(discovery, registry, index.NewStore(), notifier, cfg.Scan.Concurrency), nil
}

// engineFor is shared by the mcp command.
func engineFor(orchestrator *scan.Orchestrator) *complete.Engine {
	return complete.NewEngine(orchestrator.Store())
}
