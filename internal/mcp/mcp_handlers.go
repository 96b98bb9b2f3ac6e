package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/cruxaudit/internal/contract"
	"github.com/huangsam/cruxaudit/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	audit   AuditFunc
}

func (h *toolHandler) handleAuditDomains(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	targets := contract.SplitTargets(request.GetString("domains", ""))
	if len(targets) == 0 {
		return mcp.NewToolResultError("domains is required"), nil
	}

	cfg := h.baseCfg.Clone()
	cfg.Targets = targets
	// stdio carries the protocol, so the live run log stays off
	cfg.Quiet = true

	report := h.audit(ctx, cfg)
	if report == nil {
		return mcp.NewToolResultError("audit produced no report"), nil
	}
	if !report.Succeeded() {
		return mcp.NewToolResultError(fmt.Sprintf("audit failed (%s error): %s", report.Failure, report.Error)), nil
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode report: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetThresholds(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(schema.AllThresholds(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
