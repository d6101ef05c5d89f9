// ABOUTME: MCP tool definitions and registration for the textbook tutor server
// ABOUTME: Defines JSON schemas for the query, content, and task tools
package mcp

import (
	"github.com/harper/textbook-tutor/internal/content"
	"github.com/harper/textbook-tutor/internal/core"
	"github.com/harper/textbook-tutor/internal/tasks"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine *core.Engine, store content.Store, runner *tasks.Runner, catalog *tasks.Catalog) *Handlers {
	handlers := &Handlers{
		engine:   engine,
		store:    store,
		runner:   runner,
		registry: catalog.Registry(),
	}

	// 1. ask_textbook - Answer a question from the textbook content
	server.AddTool(mcp.Tool{
		Name:        "ask_textbook",
		Description: "Answer a question using the indexed textbook content. Responses cite the chapters they draw from.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer from the textbook",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Optional session identifier (default: 'default')",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.AskTextbook)

	// 2. explain_selection - Answer a question about a selected passage
	server.AddTool(mcp.Tool{
		Name:        "explain_selection",
		Description: "Answer a question about a passage the user selected. The selection anchors retrieval to the surrounding material.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"selected_text": map[string]interface{}{
					"type":        "string",
					"description": "The passage the user highlighted",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Question about the selected passage",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Optional session identifier (default: 'default')",
				},
			},
			Required: []string{"selected_text", "query"},
		},
	}, handlers.ExplainSelection)

	// 3. list_chapters - List the available textbook chapters
	server.AddTool(mcp.Tool{
		Name:        "list_chapters",
		Description: "List all textbook chapters with their metadata.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListChapters)

	// 4. reindex_content - Rebuild the vector index from the content store
	server.AddTool(mcp.Tool{
		Name:        "reindex_content",
		Description: "Re-chunk, re-embed, and re-index every textbook chapter. Safe to run repeatedly.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ReindexContent)

	// 5. run_task - Dispatch a named background task
	server.AddTool(mcp.Tool{
		Name:        "run_task",
		Description: "Dispatch a named background task (ai_query, content_analysis, content_indexing, data_fetch) and return its task id immediately.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"task_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the task to run",
				},
				"args": map[string]interface{}{
					"type":        "object",
					"description": "Arguments passed to the task",
				},
			},
			Required: []string{"task_name"},
		},
	}, handlers.RunTask)

	// 6. task_status - Check on a dispatched task
	server.AddTool(mcp.Tool{
		Name:        "task_status",
		Description: "Get the status of a dispatched task, including its result once finished.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"task_id": map[string]interface{}{
					"type":        "string",
					"description": "Task id returned by run_task",
				},
			},
			Required: []string{"task_id"},
		},
	}, handlers.TaskStatus)

	// 7. cancel_task - Signal a running task to stop
	server.AddTool(mcp.Tool{
		Name:        "cancel_task",
		Description: "Signal a running task to stop. Cancellation is advisory: in-flight work may still run to completion.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"task_id": map[string]interface{}{
					"type":        "string",
					"description": "Task id returned by run_task",
				},
			},
			Required: []string{"task_id"},
		},
	}, handlers.CancelTask)

	return handlers
}
