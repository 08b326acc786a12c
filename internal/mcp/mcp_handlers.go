package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/streak/core"
	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// scopeResult is the payload returned by check_scope.
type scopeResult struct {
	Path    string `json:"path"`
	Scope   string `json:"scope"`
	InScope bool   `json:"in_scope"`
}

// applyCommon overlays the arguments shared by the streak tools onto a config clone.
func (h *toolHandler) applyCommon(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("root_path", ""); p != "" {
		absPath, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("root path %q is not accessible: %w", p, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("root path %q is not a directory", p)
		}
		cfg.RootPath = absPath
	}
	if folder, ok := request.GetArguments()["folder_path"].(string); ok {
		cfg.Settings.FolderPath = strings.TrimSpace(folder)
	}
	return cfg, nil
}

func (h *toolHandler) handleGetStreak(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyCommon(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if _, ok := request.GetArguments()["one_day_grace"]; ok {
		cfg.Settings.OneDayGrace = request.GetBool("one_day_grace", cfg.Settings.OneDayGrace)
	}
	if s := request.GetString("source", ""); s != "" {
		source := schema.SourceKind(strings.ToLower(s))
		if _, ok := schema.ValidSourceKinds[source]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid source '%s'. must be fs, git", s)), nil
		}
		cfg.Source = source
	}

	report, err := core.GetStreakReport(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("streak computation failed: %v", err)), nil
	}
	if report.Failed() {
		return mcp.NewToolResultError(fmt.Sprintf("streak computation failed: %s", report.Error)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListActiveDates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyCommon(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	limit := request.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("limit must not be negative (received %d)", limit)), nil
	}

	days, err := core.GetActiveDates(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing active dates failed: %v", err)), nil
	}
	if limit > 0 && len(days) > limit {
		days = days[:limit]
	}

	jsonData, _ := json.MarshalIndent(days, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCheckScope(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := strings.TrimSpace(request.GetString("path", ""))
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	scope := h.baseCfg.Settings.FolderPath
	if folder, ok := request.GetArguments()["folder_path"].(string); ok {
		scope = strings.TrimSpace(folder)
	}

	result := scopeResult{
		Path:    filepath.ToSlash(path),
		Scope:   scope,
		InScope: core.IsInScope(filepath.ToSlash(path), scope),
	}
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
