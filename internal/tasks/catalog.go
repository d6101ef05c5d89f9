// ABOUTME: Named task functions exposed to the task invoker
// ABOUTME: Each returns a uniform status envelope instead of raising
package tasks

import (
	"context"
	"fmt"

	"github.com/harper/textbook-tutor/internal/content"
	"github.com/harper/textbook-tutor/internal/core"
)

// TaskFunc is a named task callable with loosely-typed arguments. It always
// returns a {"status": "success" | "error", ...} envelope.
type TaskFunc func(ctx context.Context, args map[string]interface{}) map[string]interface{}

// Catalog holds the named tasks built around the engine and content store.
type Catalog struct {
	engine *core.Engine
	store  content.Store
}

// NewCatalog creates the task catalog.
func NewCatalog(engine *core.Engine, store content.Store) *Catalog {
	return &Catalog{engine: engine, store: store}
}

// Registry maps task names to their functions.
func (c *Catalog) Registry() map[string]TaskFunc {
	return map[string]TaskFunc{
		"ai_query":         c.AIQuery,
		"content_analysis": c.ContentAnalysis,
		"content_indexing": c.ContentIndexing,
		"data_fetch":       c.DataFetch,
	}
}

// AIQuery runs a query through the retrieval-and-synthesis engine.
func (c *Catalog) AIQuery(ctx context.Context, args map[string]interface{}) map[string]interface{} {
	if err := ctx.Err(); err != nil {
		return errEnvelope(err)
	}

	query := argString(args, "query", "")
	if query == "" {
		return errEnvelope(fmt.Errorf("query argument is required"))
	}
	sessionID := argString(args, "session_id", "default")

	result, err := c.engine.ProcessQuery(query, sessionID)
	if err != nil {
		return errEnvelope(err)
	}

	return map[string]interface{}{
		"status":    "success",
		"response":  result.Response,
		"citations": result.Citations,
		"query_id":  result.QueryID,
	}
}

// ContentAnalysis produces a summary, key points, or sentiment for a text.
func (c *Catalog) ContentAnalysis(ctx context.Context, args map[string]interface{}) map[string]interface{} {
	if err := ctx.Err(); err != nil {
		return errEnvelope(err)
	}

	text := argString(args, "content", "")
	analysisType := argString(args, "analysis_type", "summary")

	var result interface{}
	switch analysisType {
	case "summary":
		result = "Summary of content: " + previewText(text, 100)
	case "key_points":
		result = []string{"Key point 1", "Key point 2", "Key point 3"}
	case "sentiment":
		result = "neutral"
	default:
		result = fmt.Sprintf("Analysis result for %s", analysisType)
	}

	return map[string]interface{}{
		"status":        "success",
		"analysis_type": analysisType,
		"result":        result,
	}
}

// ContentIndexing rebuilds the vector index from the content store.
func (c *Catalog) ContentIndexing(ctx context.Context, args map[string]interface{}) map[string]interface{} {
	if err := ctx.Err(); err != nil {
		return errEnvelope(err)
	}

	if err := c.engine.IndexAllChapters(); err != nil {
		return errEnvelope(err)
	}
	return map[string]interface{}{
		"status":  "success",
		"message": "All textbook content indexed successfully",
	}
}

// DataFetch returns data from a named source. Only the textbook source is
// wired to real data.
func (c *Catalog) DataFetch(ctx context.Context, args map[string]interface{}) map[string]interface{} {
	if err := ctx.Err(); err != nil {
		return errEnvelope(err)
	}

	source := argString(args, "source", "textbook")

	var result interface{}
	switch source {
	case "textbook":
		chapters, err := c.store.ListChapters()
		if err != nil {
			return errEnvelope(err)
		}
		result = chapters
	default:
		result = map[string]interface{}{"data": fmt.Sprintf("mock data from %s", source), "source": source}
	}

	return map[string]interface{}{
		"status": "success",
		"source": source,
		"result": result,
	}
}

func errEnvelope(err error) map[string]interface{} {
	return map[string]interface{}{
		"status": "error",
		"error":  err.Error(),
	}
}

func argString(args map[string]interface{}, key, defaultVal string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return defaultVal
}

func previewText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
