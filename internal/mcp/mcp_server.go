// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/streak/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Streak MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Streak Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_streak ---
	s.AddTool(mcp.NewTool("get_streak",
		mcp.WithDescription("Compute the current writing streak: consecutive days with file activity ending today or yesterday."),
		mcp.WithString("root_path", mcp.Description("Path to the notes directory (defaults to the configured root).")),
		mcp.WithString("folder_path", mcp.Description("Only count files under this folder. Use '/' for the root folder only.")),
		mcp.WithBoolean("one_day_grace", mcp.Description("Bridge a single missing day when the day before it was active.")),
		mcp.WithString("source", mcp.Description("Where timestamps come from (fs, git). Defaults to 'fs'."), mcp.Enum("fs", "git")),
	), h.handleGetStreak)

	// --- 2. Tool: list_active_dates ---
	s.AddTool(mcp.NewTool("list_active_dates",
		mcp.WithDescription("List the calendar days with file activity, newest first, with the number of files touched."),
		mcp.WithString("root_path", mcp.Description("Path to the notes directory.")),
		mcp.WithString("folder_path", mcp.Description("Only count files under this folder.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of days returned.")),
	), h.handleListActiveDates)

	// --- 3. Tool: check_scope ---
	s.AddTool(mcp.NewTool("check_scope",
		mcp.WithDescription("Report whether a file path counts toward the streak for a monitored folder."),
		mcp.WithString("path", mcp.Description("File path relative to the notes root, with '/' separators."), mcp.Required()),
		mcp.WithString("folder_path", mcp.Description("Monitored folder (defaults to the configured one).")),
	), h.handleCheckScope)

	return s
}

// StartMCPServer starts the Streak MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
