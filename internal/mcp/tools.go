// ABOUTME: MCP tool definitions and registration for the docsage server
// ABOUTME: Defines JSON schemas for the 4 document question-answering tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docsage/docsage/internal/core"
)

// RegisterTools registers all MCP tools with the server. The engine
// must already be initialized by the caller.
func RegisterTools(server *mcpserver.MCPServer, engine *core.Engine) *Handlers {
	handlers := &Handlers{engine: engine}

	server.AddTool(mcp.Tool{
		Name:        "ingest_document",
		Description: "Ingest a document into the question-answering context. The text is split into paragraph chunks, embedded and stored; subsequent questions are answered against it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Full document text to ingest",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.IngestDocument)

	server.AddTool(mcp.Tool{
		Name:        "ask_question",
		Description: "Ask a question about the ingested document. The most similar stored chunks are retrieved and sent to the configured language model.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language question to answer",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskQuestion)

	server.AddTool(mcp.Tool{
		Name:        "clear_context",
		Description: "Remove every stored document chunk. The engine stays initialized and a new document can be ingested immediately.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ClearContext)

	server.AddTool(mcp.Tool{
		Name:        "engine_status",
		Description: "Report the engine state, active provider and models, and the number of stored chunks.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.EngineStatus)

	return handlers
}
