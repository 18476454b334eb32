// ABOUTME: CLI command to clear the stored document context
// ABOUTME: Removes all chunks while keeping the database and configuration
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/store"
)

// NewClearCmd creates the clear command
func NewClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the stored document context",
		Long: `Remove every stored document chunk.

The database file stays in place and a new document can be ingested
immediately afterwards. Works directly on the database, no embedding
backend needed.`,
		RunE: runClear,
	}

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
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
	if err := chunkStore.Clear(); err != nil {
		return err
	}

	if !quiet {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✓ Document context cleared")
	}
	return nil
}
