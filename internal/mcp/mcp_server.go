// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/kennelops/musher/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Musher MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Musher Workload Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_indicators ---
	s.AddTool(mcp.NewTool("get_indicators",
		mcp.WithDescription("Compute workload indicators (work streak, rest streak, work share, rolling 7-day load) for every dog in the roster."),
		mcp.WithString("date", mcp.Description("As-of date in YYYY-MM-DD format (defaults to today).")),
		mcp.WithString("dog", mcp.Description("Restrict output to one dog ID.")),
	), h.handleGetIndicators)

	// --- 2. Tool: get_alerts ---
	s.AddTool(mcp.NewTool("get_alerts",
		mcp.WithDescription("Evaluate workload rules and return threshold-breach alerts, most severe first."),
		mcp.WithString("date", mcp.Description("As-of date in YYYY-MM-DD format (defaults to today).")),
		mcp.WithString("dog", mcp.Description("Restrict output to one dog ID.")),
	), h.handleGetAlerts)

	// --- 3. Tool: build_team ---
	s.AddTool(mcp.NewTool("build_team",
		mcp.WithDescription("Assemble the freshest eligible team for a run date, skipping excluded and alert-blocked dogs."),
		mcp.WithNumber("size", mcp.Description("Requested team size."), mcp.Required()),
		mcp.WithString("date", mcp.Description("Run date in YYYY-MM-DD format (defaults to today).")),
		mcp.WithString("exclude", mcp.Description("Comma-separated dog IDs to exclude.")),
	), h.handleBuildTeam)

	return s
}

// StartMCPServer starts the Musher MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
