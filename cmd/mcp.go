package cmd

import (
	"github.com/huangsam/cruxaudit/core"
	"github.com/huangsam/cruxaudit/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the CrUX Audit MCP server",
	Long: `Launch an MCP server on stdio that allows AI agents to audit domains via standard tools.

The CrUX credential and model settings come from the usual flags, environment
and config file; agents only pass the domains.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, core.RunAudit)
	},
}
