// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/chronometrist/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Chronometrist MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Chronometrist Timeline Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: render_timeline ---
	s.AddTool(mcp.NewTool("render_timeline",
		mcp.WithDescription("Render the text timeline of a recorded request trace (YAML or JSON)."),
		mcp.WithString("trace", mcp.Description("Trace document with path, status, finish_ms and events (title, start_ms, end_ms, error, code, annotations)."), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("Screen width in columns. Defaults to the configured width.")),
		mcp.WithNumber("round_to", mcp.Description("Rounding granularity in milliseconds.")),
	), h.handleRenderTimeline)

	// --- 2. Tool: select_scale ---
	s.AddTool(mcp.NewTool("select_scale",
		mcp.WithDescription("Pick the tick interval used for a request of the given duration."),
		mcp.WithNumber("life_ms", mcp.Description("Total request duration in milliseconds."), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("Screen width in columns.")),
	), h.handleSelectScale)

	return s
}

// StartMCPServer starts the Chronometrist MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
