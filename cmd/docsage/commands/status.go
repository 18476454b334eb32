// ABOUTME: CLI command to show the configured stack and stored context
// ABOUTME: Reads the database directly, no embedding backend needed
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/store"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show configuration and stored context",
		RunE:  runStatus,
	}

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
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
	count, err := chunkStore.Count()
	if err != nil {
		return err
	}
	generation, err := chunkStore.Generation()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Provider:         %s\n", cfg.Provider)
	if cfg.GenerationModel != "" {
		_, _ = fmt.Fprintf(out, "Generation model: %s\n", cfg.GenerationModel)
	} else {
		_, _ = fmt.Fprintf(out, "Generation model: (provider default)\n")
	}
	_, _ = fmt.Fprintf(out, "Embedding model:  %s\n", cfg.EmbeddingModel)
	_, _ = fmt.Fprintf(out, "Database:         %s\n", cfg.DBPath)
	_, _ = fmt.Fprintf(out, "Stored chunks:    %d\n", count)
	if generation != "" && generation != cfg.EmbeddingModel {
		_, _ = fmt.Fprintf(out, "Note: stored chunks were embedded with %s; the next run will clear them.\n", generation)
	}
	return nil
}
