package main

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binaryPath is set by TestMain after building the binary.
var binaryPath string

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	tmp, err := os.MkdirTemp("", "rndocs-integration-*")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(tmp, "rndocs")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(tmp)
		panic("failed to build binary: " + err.Error())
	}

	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

func skipIfNotIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run integration tests")
	}
}

// startServer launches rndocs serve and returns an initialized client.
func startServer(t *testing.T, args ...string) *client.Client {
	t.Helper()

	c, err := client.NewStdioMCPClient(binaryPath, nil, append([]string{"serve"}, args...)...)
	require.NoError(t, err, "failed to start MCP server")
	t.Cleanup(func() { c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "rndocs-integration-test", Version: "1.0.0"}

	result, err := c.Initialize(ctx, initReq)
	require.NoError(t, err, "failed to initialize MCP session")
	assert.Equal(t, "rndocs", result.ServerInfo.Name)
	return c
}

func callTool(t *testing.T, c *client.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	if args != nil {
		req.Params.Arguments = args
	}
	result, err := c.CallTool(ctx, req)
	require.NoError(t, err, "CallTool(%s) failed", name)
	return result
}

func decodeResult(t *testing.T, result *mcp.CallToolResult, v any) {
	t.Helper()
	require.False(t, result.IsError, "tool returned an error")
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	require.NoError(t, json.Unmarshal([]byte(text.Text), v))
}

func TestIntegration_ListTools(t *testing.T) {
	skipIfNotIntegration(t)
	c := startServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)

	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"list_categories", "list_documents", "get_document", "filter_props", "search_documents",
	}, names)
}

func TestIntegration_Navigation(t *testing.T) {
	skipIfNotIntegration(t)
	c := startServer(t)

	var cats []struct {
		Name  string `json:"name"`
		Count int    `json:"document_count"`
	}
	decodeResult(t, callTool(t, c, "list_categories", nil), &cats)
	require.NotEmpty(t, cats)
	assert.Equal(t, "Basic UI", cats[0].Name)

	var nav struct {
		Total   int    `json:"total"`
		Message string `json:"message"`
	}
	decodeResult(t, callTool(t, c, "list_documents", map[string]any{"query": "zzzz"}), &nav)
	assert.Zero(t, nav.Total)
	assert.Equal(t, "No components found", nav.Message)
}

func TestIntegration_GetDocumentFallback(t *testing.T) {
	skipIfNotIntegration(t)
	c := startServer(t)

	var resp struct {
		Fallback bool `json:"fallback"`
		Document struct {
			ID string `json:"id"`
		} `json:"document"`
	}
	decodeResult(t, callTool(t, c, "get_document", map[string]any{"id": "nope"}), &resp)
	assert.True(t, resp.Fallback)
	assert.Equal(t, "text", resp.Document.ID)
}

func TestIntegration_FilterProps(t *testing.T) {
	skipIfNotIntegration(t)
	c := startServer(t)

	var resp struct {
		Count int `json:"count"`
		Props []struct {
			Name string `json:"name"`
		} `json:"props"`
	}
	decodeResult(t, callTool(t, c, "filter_props", map[string]any{
		"id":       "textinput",
		"selected": []string{"onChangeText", "value"},
	}), &resp)
	assert.Equal(t, 2, resp.Count)

	decodeResult(t, callTool(t, c, "filter_props", map[string]any{"id": "view", "query": "x"}), &resp)
	assert.Equal(t, 20, resp.Count)

	result := callTool(t, c, "filter_props", nil)
	assert.True(t, result.IsError)
}
