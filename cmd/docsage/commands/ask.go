// ABOUTME: CLI command to ask a question about the ingested document
// ABOUTME: Retrieves similar chunks and queries the configured LLM provider
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docsage/docsage/internal/core"
	"github.com/docsage/docsage/internal/models"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the ingested document",
		Long: `Ask a question about the ingested document.

The question is embedded, the most similar stored chunks are retrieved
and sent to the configured LLM provider together with the question.
The answer is printed as markdown.

Examples:
  docsage ask "What is the refund policy?"
  DOCSAGE_PROVIDER=openai docsage ask "Summarize the introduction"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("no question provided")
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

	if engine.State() != core.StateDocumentReady {
		return fmt.Errorf("no document ingested yet; run \"docsage ingest\" first")
	}

	answer, err := askEngine(ctx, engine, question)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}

// askEngine runs one query command and returns the answer text.
func askEngine(ctx context.Context, engine *core.Engine, question string) (string, error) {
	events, err := engine.Submit(ctx, core.QueryCommand{Query: question})
	if err != nil {
		return "", err
	}

	var answer string
	var failure error
	for ev := range events {
		switch ev.Type {
		case models.EventProgress:
			if verbose && !quiet {
				fmt.Println(ev.Message)
			}
		case models.EventAnswer:
			answer = ev.Answer
		case models.EventError:
			failure = ev.Err
			if failure == nil {
				failure = fmt.Errorf("%s", ev.Message)
			}
		}
	}
	return answer, failure
}
