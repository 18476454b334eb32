// ABOUTME: CLI command to ingest a document into the question-answering context
// ABOUTME: Handles text argument, file input and stdin
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/core"
)

var ingestFile string

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [text]",
		Short: "Ingest a document",
		Long: `Ingest a document into the question-answering context.

The text is split into paragraph chunks, embedded with the configured
embedding model and stored in the local database. Ingesting more text
adds to the existing context; use "docsage clear" to start over.

Examples:
  docsage ingest --file report.txt
  docsage ingest "Some short document text..."
  cat report.txt | docsage ingest`,
		Args: cobra.MaximumNArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestFile, "file", "", "Read document from file")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	var text string
	if ingestFile != "" {
		data, err := os.ReadFile(ingestFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		text = string(data)
	} else if len(args) > 0 {
		text = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text provided")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	engine, err := bootEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	if err := runCommand(ctx, engine, core.ProcessDocumentCommand{Text: text}); err != nil {
		return err
	}

	if !quiet {
		status := engine.Status()
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Document ingested (%d chunks stored)\n", status.Chunks)
	}
	return nil
}
