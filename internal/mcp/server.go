// Package mcp exposes the classdex completion and rescan surface to host
// editors and agents over the Model Context Protocol on stdio.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/classdex/classdex/internal/complete"
	"github.com/classdex/classdex/internal/scan"
)

// Server manages the MCP server lifecycle around a scan orchestrator and
// a completion engine.
type Server struct {
	orchestrator *scan.Orchestrator
	engine       *complete.Engine
	mcp          *server.MCPServer
}

// NewServer creates an MCP server with the completion and rescan tools
// registered.
func NewServer(orchestrator *scan.Orchestrator, engine *complete.Engine) (*Server, error) {
	if orchestrator == nil {
		return nil, fmt.Errorf("orchestrator is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("completion engine is required")
	}

	mcpServer := server.NewMCPServer(
		"classdex",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	AddClassCompletionsTool(mcpServer, engine)
	AddRescanTool(mcpServer, orchestrator)

	return &Server{
		orchestrator: orchestrator,
		engine:       engine,
		mcp:          mcpServer,
	}, nil
}

// Serve runs one initial scan in the background, starts the MCP server on
// stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Startup scan; completions are served from the empty snapshot until
	// it publishes.
	go func() {
		if _, err := s.orchestrator.RunScan(ctx); err != nil {
			log.Printf("startup scan failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
