// ABOUTME: MCP tool handler implementations for the textbook tutor server
// ABOUTME: Contains handler implementations with proper error handling for all 7 tools
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harper/textbook-tutor/internal/content"
	"github.com/harper/textbook-tutor/internal/core"
	"github.com/harper/textbook-tutor/internal/tasks"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine   *core.Engine
	store    content.Store
	runner   *tasks.Runner
	registry map[string]tasks.TaskFunc
}

// AskTextbook handles the ask_textbook tool
func (h *Handlers) AskTextbook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	sessionID := request.GetString("session_id", "default")

	result, err := h.engine.ProcessQuery(query, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}

	return marshalResult(map[string]interface{}{
		"response":   result.Response,
		"citations":  result.Citations,
		"query_id":   result.QueryID,
		"confidence": result.Confidence,
	})
}

// ExplainSelection handles the explain_selection tool
func (h *Handlers) ExplainSelection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	selectedText, err := request.RequireString("selected_text")
	if err != nil {
		return mcp.NewToolResultError("selected_text argument is required and must be a string"), nil
	}

	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	sessionID := request.GetString("session_id", "default")

	result, err := h.engine.ProcessTextSelectionQuery(selectedText, query, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("selection query failed: %v", err)), nil
	}

	return marshalResult(map[string]interface{}{
		"response":   result.Response,
		"citations":  result.Citations,
		"query_id":   result.QueryID,
		"confidence": result.Confidence,
	})
}

// ListChapters handles the list_chapters tool
func (h *Handlers) ListChapters(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chapters, err := h.store.ListChapters()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list chapters: %v", err)), nil
	}

	summaries := make([]map[string]interface{}, 0, len(chapters))
	for _, ch := range chapters {
		summaries = append(summaries, map[string]interface{}{
			"chapter_id":     ch.ChapterID,
			"title":          ch.Title,
			"chapter_number": ch.ChapterNumber,
			"word_count":     ch.WordCount,
		})
	}

	return marshalResult(map[string]interface{}{
		"chapters": summaries,
		"count":    len(summaries),
	})
}

// ReindexContent handles the reindex_content tool
func (h *Handlers) ReindexContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.engine.IndexAllChapters(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("indexing failed: %v", err)), nil
	}

	return marshalResult(map[string]interface{}{
		"message": "All textbook content indexed successfully",
	})
}

// RunTask handles the run_task tool
func (h *Handlers) RunTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskName, err := request.RequireString("task_name")
	if err != nil {
		return mcp.NewToolResultError("task_name argument is required and must be a string"), nil
	}

	taskFn, ok := h.registry[taskName]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown task: %s", taskName)), nil
	}

	taskArgs := map[string]interface{}{}
	if reqArgs, ok := request.Params.Arguments.(map[string]any); ok {
		if raw, exists := reqArgs["args"]; exists {
			if argsMap, ok := raw.(map[string]interface{}); ok {
				taskArgs = argsMap
			}
		}
	}

	taskID := h.runner.Start(taskName, func(taskCtx context.Context) (interface{}, error) {
		envelope := taskFn(taskCtx, taskArgs)
		if envelope["status"] == "error" {
			return nil, fmt.Errorf("%v", envelope["error"])
		}
		return envelope, nil
	})

	return marshalResult(map[string]interface{}{
		"task_id":   taskID,
		"task_name": taskName,
		"status":    string(tasks.StatusPending),
	})
}

// TaskStatus handles the task_status tool
func (h *Handlers) TaskStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError("task_id argument is required and must be a string"), nil
	}

	status, err := h.runner.Status(taskID)
	if err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("task not found: %s", taskID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("status lookup failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"task_id": taskID,
		"status":  string(status),
	}

	// Terminal states carry the result record
	if result, err := h.runner.ResultFor(taskID); err == nil {
		response["result"] = result.Value
		response["completed_at"] = result.CompletedAt.Format(time.RFC3339)
		if result.Err != nil {
			response["error"] = result.Err.Error()
		}
	}

	return marshalResult(response)
}

// CancelTask handles the cancel_task tool
func (h *Handlers) CancelTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError("task_id argument is required and must be a string"), nil
	}

	cancelled := h.runner.Cancel(taskID)
	if !cancelled {
		// Distinguish an unknown id from a task already past cancellation
		if _, err := h.runner.Status(taskID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("task not found: %s", taskID)), nil
		}
	}

	return marshalResult(map[string]interface{}{
		"task_id":   taskID,
		"cancelled": cancelled,
	})
}

// marshalResult encodes a response map as a JSON tool result
func marshalResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
