// ABOUTME: CLI command to export stored chunks as YAML or JSON
// ABOUTME: Writes to stdout or a file, reading the database directly
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/store"
)

var (
	exportFormat string
	exportOutput string
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored chunks",
		Long: `Export the stored document chunks as YAML or JSON.

Vectors are reduced to their dimension; the chunk text and metadata are
exported in full.

Examples:
  docsage export
  docsage export --format json --output chunks.json`,
		RunE: runExport,
	}

	cmd.Flags().StringVar(&exportFormat, "format", "yaml", "Export format: yaml or json")
	cmd.Flags().StringVar(&exportOutput, "output", "", "Write to file instead of stdout")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "yaml" && exportFormat != "json" {
		return fmt.Errorf("unsupported format %q (use yaml or json)", exportFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	chunkStore, err := store.New(db)
	if err != nil {
		return err
	}
	data, err := chunkStore.Export()
	if err != nil {
		return err
	}

	var out []byte
	if exportFormat == "json" {
		out, err = data.ToJSON()
	} else {
		out, err = data.ToYAML()
	}
	if err != nil {
		return fmt.Errorf("serializing export: %w", err)
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, out, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", exportOutput, err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d chunks to %s\n", len(data.Chunks), exportOutput)
		}
		return nil
	}

	_, _ = cmd.OutOrStdout().Write(out)
	return nil
}
