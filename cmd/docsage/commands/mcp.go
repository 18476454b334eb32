// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to query documents via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docsage/docsage/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs docsage as an MCP (Model Context Protocol) server, exposing
document ingestion and question answering to agents via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an agent host)
  docsage mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "docsage": {
  #       "command": "docsage",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The engine boots before the server so a broken embedding backend
	// fails fast instead of surfacing on the first tool call
	engine, err := bootEngine(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	defer func() { _ = engine.Close() }()

	server := mcpserver.NewMCPServer(
		"docsage",
		"0.1.0",
	)
	mcp.RegisterTools(server, engine)

	if !quiet {
		log.Println("docsage MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
