package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/rndocs/pkg/mcplog"
)

// loggingMiddleware records every tool call in the JSONL call log. Log
// write failures never affect the call's result.
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := mcplog.Now()
			result, err := next(ctx, req)

			if logErr := s.callLog.Record(req.Params.Name, req.GetArguments(), start, result, err); logErr != nil {
				s.logger.Warn("failed to write MCP call log", "tool", req.Params.Name, "error", logErr)
			}
			return result, err
		}
	}
}
