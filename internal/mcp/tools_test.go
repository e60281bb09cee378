package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classdex/classdex/internal/complete"
	"github.com/classdex/classdex/internal/extract"
	"github.com/classdex/classdex/internal/index"
	"github.com/classdex/classdex/internal/scan"
)

// newTestPipeline builds an orchestrator and engine over a pre-populated
// snapshot, without touching the filesystem.
func newTestPipeline(t *testing.T, classNames ...string) (*scan.Orchestrator, *complete.Engine) {
	t.Helper()

	registry := extract.DefaultRegistry()
	discovery, err := scan.NewDiscovery(nil, registry, nil)
	require.NoError(t, err)

	store := index.NewStore()
	defs := make([]index.Definition, 0, len(classNames))
	for _, n := range classNames {
		defs = append(defs, index.Definition{ClassName: n})
	}
	store.Publish(index.NewSnapshot(defs))

	orchestrator := scan.NewOrchestrator(discovery, registry, store, nil, 4)
	return orchestrator, complete.NewEngine(store)
}

func callToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent")
	return tc.Text
}

func TestClassCompletionsHandler_ReturnsCandidates(t *testing.T) {
	t.Parallel()

	_, engine := newTestPipeline(t, "foo", "bar", "baz")
	handler := createCompletionsHandler(engine)

	result, err := handler(context.Background(), callToolRequest("class_completions", map[string]interface{}{
		"language_id":        "html",
		"text_before_cursor": `<div class="foo `,
	}))
	require.NoError(t, err)

	var response CompletionsResponse
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &response))

	assert.Equal(t, 2, response.Total)
	require.Len(t, response.Items, 2)
	assert.Equal(t, "bar", response.Items[0].Label)
	assert.Equal(t, "baz", response.Items[1].Label)
}

func TestClassCompletionsHandler_NoContextIsEmptyNotError(t *testing.T) {
	t.Parallel()

	_, engine := newTestPipeline(t, "foo")
	handler := createCompletionsHandler(engine)

	result, err := handler(context.Background(), callToolRequest("class_completions", map[string]interface{}{
		"language_id":        "html",
		"text_before_cursor": "plain prose",
	}))
	require.NoError(t, err)

	var response CompletionsResponse
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &response))
	assert.Equal(t, 0, response.Total)
	assert.NotNil(t, response.Items, "empty result must serialize as [], not null")
}

func TestClassCompletionsHandler_MissingLanguageID(t *testing.T) {
	t.Parallel()

	_, engine := newTestPipeline(t, "foo")
	handler := createCompletionsHandler(engine)

	result, err := handler(context.Background(), callToolRequest("class_completions", map[string]interface{}{
		"text_before_cursor": `<div class="`,
	}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestRescanHandler_EmptyWorkspaceCompletes(t *testing.T) {
	t.Parallel()

	orchestrator, _ := newTestPipeline(t)
	handler := createRescanHandler(orchestrator)

	result, err := handler(context.Background(), callToolRequest("rescan_classes", nil))
	require.NoError(t, err)

	var response RescanResponse
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &response))
	assert.Equal(t, "completed", response.Status)
	assert.Equal(t, 0, response.FilesDiscovered)
}

func TestToolRegistration(t *testing.T) {
	t.Parallel()

	mcpServer := server.NewMCPServer("test-server", "1.0.0", server.WithToolCapabilities(true))
	orchestrator, engine := newTestPipeline(t, "foo")

	require.NotPanics(t, func() {
		AddClassCompletionsTool(mcpServer, engine)
		AddRescanTool(mcpServer, orchestrator)
	})
}

func TestNewServer_RequiresCollaborators(t *testing.T) {
	t.Parallel()

	orchestrator, engine := newTestPipeline(t)

	_, err := NewServer(nil, engine)
	require.Error(t, err)

	_, err = NewServer(orchestrator, nil)
	require.Error(t, err)

	s, err := NewServer(orchestrator, engine)
	require.NoError(t, err)
	assert.NotNil(t, s)
}
