package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/classdex/classdex/internal/complete"
	"github.com/classdex/classdex/internal/scan"
)

// CompletionsResponse is the JSON payload returned by class_completions.
type CompletionsResponse struct {
	Items []complete.Item `json:"items"`
	Total int             `json:"total"`
}

// RescanResponse is the JSON payload returned by rescan_classes.
type RescanResponse struct {
	Status            string   `json:"status"` // "completed" or "already_running"
	FilesDiscovered   int      `json:"files_discovered,omitempty"`
	DefinitionsFound  int      `json:"definitions_found,omitempty"`
	UniqueDefinitions int      `json:"unique_definitions,omitempty"`
	FailedFiles       []string `json:"failed_files,omitempty"`
}

// AddClassCompletionsTool registers the class_completions tool. The
// function is composable - it can be combined with other tool
// registrations.
func AddClassCompletionsTool(s *server.MCPServer, engine *complete.Engine) {
	tool := mcp.NewTool(
		"class_completions",
		mcp.WithDescription(fmt.Sprintf(
			"Suggest CSS class names for the class attribute being typed at the cursor. Returns candidates from the indexed workspace, excluding names already present in the attribute value. Hosts should request completions on the trigger characters %q in addition to normal typing.",
			strings.Join(complete.TriggerCharacters, ""))),
		mcp.WithString("language_id",
			mcp.Required(),
			mcp.Description("Editor language identifier of the document (e.g. 'html', 'typescriptreact')")),
		mcp.WithString("text_before_cursor",
			mcp.Required(),
			mcp.Description("Text of the current line from its start up to the cursor position")),
	)

	s.AddTool(tool, createCompletionsHandler(engine))
}

func createCompletionsHandler(engine *complete.Engine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		languageID, ok := argsMap["language_id"].(string)
		if !ok || languageID == "" {
			return mcp.NewToolResultError("language_id parameter is required"), nil
		}

		// Empty text is legal: the cursor can sit at the start of a line.
		textBeforeCursor, _ := argsMap["text_before_cursor"].(string)

		items := engine.Provide(languageID, textBeforeCursor)
		if items == nil {
			items = []complete.Item{}
		}

		response := &CompletionsResponse{Items: items, Total: len(items)}
		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// AddRescanTool registers the rescan_classes tool.
func AddRescanTool(s *server.MCPServer, orchestrator *scan.Orchestrator) {
	tool := mcp.NewTool(
		"rescan_classes",
		mcp.WithDescription("Rebuild the class-name index with a full workspace scan. A no-op if a scan is already running."),
	)

	s.AddTool(tool, createRescanHandler(orchestrator))
}

func createRescanHandler(orchestrator *scan.Orchestrator) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := orchestrator.RunScan(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		var response RescanResponse
		if stats == nil {
			// Single-flight no-op: a scan was already running. Tell the
			// caller explicitly instead of reporting stale counts.
			response.Status = "already_running"
		} else {
			response.Status = "completed"
			response.FilesDiscovered = stats.FilesDiscovered
			response.DefinitionsFound = stats.DefinitionsFound
			response.UniqueDefinitions = stats.UniqueDefinitions
			response.FailedFiles = stats.FailedPaths()
		}

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
