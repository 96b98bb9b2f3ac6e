// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/cruxaudit/internal/contract"
	"github.com/huangsam/cruxaudit/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// AuditFunc runs one audit with a fully resolved config.
type AuditFunc func(ctx context.Context, cfg *contract.Config) *schema.RunReport

// NewMCPServer initializes and configures the audit MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, audit AuditFunc) *server.MCPServer {
	s := server.NewMCPServer(
		"CrUX Audit Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		audit:   audit,
	}

	s.AddTool(mcp.NewTool("audit_domains",
		mcp.WithDescription("Audit Core Web Vitals of up to 10 domains from the Chrome UX Report, with trend analysis, a report per domain and a ranked comparison."),
		mcp.WithString("domains", mcp.Description("Comma-separated domains or origins (e.g., 'example.com,https://shop.example.com')."), mcp.Required()),
	), h.handleAuditDomains)

	s.AddTool(mcp.NewTool("get_thresholds",
		mcp.WithDescription("List the good and needs-improvement thresholds used to rate LCP, CLS and INP."),
	), h.handleGetThresholds)

	return s
}

// StartMCPServer starts the audit MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, audit AuditFunc) error {
	s := NewMCPServer(baseCfg, audit)
	return server.ServeStdio(s)
}
