// Package mdserver wires the facade (internal/mdstore) onto the MCP
// wire transport, one tool per operation, the way the teacher's
// internal/server + internal/tools wires storage.MetaStore onto MCP.
package mdserver

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

// toolStatusError renders err (typically an mderrors status error) the
// same way toolError does, keeping the gRPC status message intact
// rather than discarding it.
func toolStatusError(err error) (*mcp.CallToolResult, any, error) {
	return toolError("%v", err), nil, nil
}

// boolOrDefault resolves an optional wire flag, treating an omitted
// (nil) field as def rather than Go's usual zero-value-is-false.
func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
