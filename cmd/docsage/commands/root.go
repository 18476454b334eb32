// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Also hosts the shared engine bootstrap used by ingest, ask, clear and mcp
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/config"
	"github.com/docsage/docsage/internal/core"
	"github.com/docsage/docsage/internal/models"
)

var (
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docsage",
		Short: "Ask questions about your documents",
		Long: `docsage ingests documents, embeds them into a local SQLite store
and answers questions about them with a configurable LLM provider
(ollama, openai or gemini).

Configuration is read from the environment (and a .env file if present):
DOCSAGE_PROVIDER, DOCSAGE_GENERATION_MODEL, DOCSAGE_EMBEDDING_MODEL, DOCSAGE_DB,
OPENAI_API_KEY, GEMINI_API_KEY, OLLAMA_BASE_URL.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show progress output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewClearCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads the environment (plus .env) into a validated Config
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// bootEngine creates an engine and runs initialization to completion
func bootEngine(ctx context.Context, cfg *config.Config) (*core.Engine, error) {
	engine := core.NewEngine()
	if err := runCommand(ctx, engine, core.InitCommand{Config: cfg}); err != nil {
		_ = engine.Close()
		return nil, err
	}
	return engine, nil
}

// runCommand submits one engine command and drains its event stream,
// echoing progress to stderr when verbose. Returns the terminal error,
// if any.
func runCommand(ctx context.Context, engine *core.Engine, cmd core.Command) error {
	events, err := engine.Submit(ctx, cmd)
	if err != nil {
		return err
	}

	var failure error
	for ev := range events {
		switch ev.Type {
		case models.EventProgress:
			if verbose && !quiet {
				fmt.Fprintln(os.Stderr, ev.Message)
			}
		case models.EventError:
			failure = ev.Err
			if failure == nil {
				failure = fmt.Errorf("%s", ev.Message)
			}
		}
	}
	return failure
}
