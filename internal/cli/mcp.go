package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/classdex/classdex/internal/mcp"
	"github.com/classdex/classdex/internal/scan"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP completion server on stdio",
	Long: `Starts a Model Context Protocol server exposing class-name completion to
host editors and agents.

Tools:
  class_completions - suggest class names for the attribute at the cursor
  rescan_classes    - rebuild the index with a full workspace scan

One scan runs automatically at startup. Completions never block on a
running scan; they read the most recently published index.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	// Progress goes to the log (stderr); stdout carries the protocol.
	orchestrator, err := buildOrchestrator(rootDir, scan.NoOpNotifier{})
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(orchestrator, engineFor(orchestrator))
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	return server.Serve(context.Background())
}
