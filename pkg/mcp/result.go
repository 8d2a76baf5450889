package mcp

import "github.com/modelcontextprotocol/go-sdk/mcp"

func toolResult[Out any](msg string, out Out) *mcp.CallToolResultFor[Out] {
	return &mcp.CallToolResultFor[Out]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		StructuredContent: out,
	}
}

// toolError reports a failure as a tool result rather than a protocol error,
// so the client sees the message.
func toolError[Out any](msg string, out Out) *mcp.CallToolResultFor[Out] {
	res := toolResult(msg, out)
	res.IsError = true

	return res
}
