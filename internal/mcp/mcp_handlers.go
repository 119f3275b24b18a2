package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kennelops/musher/core"
	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// applyDate resolves an optional date argument onto the cloned config.
func applyDate(cfg *contract.Config, request mcp.CallToolRequest) error {
	if d := request.GetString("date", ""); d != "" {
		day, err := schema.ParseDay(d)
		if err != nil {
			return err
		}
		cfg.Date = day
	}
	return nil
}

func (h *toolHandler) handleGetIndicators(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyDate(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date: %v", err)), nil
	}
	cfg.DogFilter = request.GetString("dog", "")

	snaps, _, err := core.GetIndicatorResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("indicator computation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(snaps, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetAlerts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyDate(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date: %v", err)), nil
	}
	cfg.DogFilter = request.GetString("dog", "")

	alerts, _, err := core.GetAlertResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rule evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(alerts, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleBuildTeam(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyDate(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date: %v", err)), nil
	}
	cfg.TeamSize = request.GetInt("size", 0)
	cfg.Exclusions = contract.SplitList(request.GetString("exclude", ""))

	assignment, _, err := core.GetTeamResult(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("team building failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(assignment, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
