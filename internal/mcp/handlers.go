// ABOUTME: MCP tool handler implementations for the docsage server
// ABOUTME: Each handler drives one engine command and renders its terminal event as JSON
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docsage/docsage/internal/core"
	"github.com/docsage/docsage/internal/faults"
	"github.com/docsage/docsage/internal/models"
)

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	engine *core.Engine
}

// run submits one command and drains its event stream, returning the
// terminal event and any progress messages observed along the way.
func (h *Handlers) run(ctx context.Context, cmd core.Command) (models.Event, []string, error) {
	events, err := h.engine.Submit(ctx, cmd)
	if err != nil {
		return models.Event{}, nil, err
	}

	var progress []string
	var terminal models.Event
	for ev := range events {
		if ev.Type == models.EventProgress {
			progress = append(progress, ev.Message)
			continue
		}
		terminal = ev
	}
	return terminal, progress, nil
}

// IngestDocument handles the ingest_document tool
func (h *Handlers) IngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	terminal, progress, err := h.run(ctx, core.ProcessDocumentCommand{Text: text})
	if err != nil {
		return toolError(err), nil
	}
	if terminal.Type == models.EventError {
		return mcp.NewToolResultError(terminal.Message), nil
	}

	response := map[string]interface{}{
		"stored_chunks": terminal.Stored,
		"state":         string(h.engine.State()),
		"progress":      progress,
	}
	return jsonResult(response)
}

// AskQuestion handles the ask_question tool
func (h *Handlers) AskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	terminal, _, err := h.run(ctx, core.QueryCommand{Query: question})
	if err != nil {
		return toolError(err), nil
	}
	if terminal.Type == models.EventError {
		return mcp.NewToolResultError(terminal.Message), nil
	}

	response := map[string]interface{}{
		"answer": terminal.Answer,
		"state":  string(h.engine.State()),
	}
	return jsonResult(response)
}

// ClearContext handles the clear_context tool
func (h *Handlers) ClearContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	terminal, _, err := h.run(ctx, core.ClearContextCommand{})
	if err != nil {
		return toolError(err), nil
	}
	if terminal.Type == models.EventError {
		return mcp.NewToolResultError(terminal.Message), nil
	}

	response := map[string]interface{}{
		"cleared": true,
		"state":   string(h.engine.State()),
	}
	return jsonResult(response)
}

// EngineStatus handles the engine_status tool
func (h *Handlers) EngineStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := h.engine.Status()

	response := map[string]interface{}{
		"state":            string(status.State),
		"provider":         status.Provider,
		"embedding_model":  status.EmbeddingModel,
		"generation_model": status.GenerationModel,
		"stored_chunks":    status.Chunks,
	}
	return jsonResult(response)
}

func toolError(err error) *mcp.CallToolResult {
	if errors.Is(err, faults.ErrBusy) {
		return mcp.NewToolResultError("engine is busy with another operation, retry shortly")
	}
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
