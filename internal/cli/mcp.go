package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/unimatch/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio transport)",
	Long: `Start the MCP (Model Context Protocol) server using stdio transport.

This lets AI assistants search departments by grade and look up universities.

Add to an MCP client config:

{
  "mcpServers": {
    "unimatch": {
      "command": "/path/to/unimatch",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	// Check if MCP is enabled
	if !cfg.MCP.Enabled {
		return fmt.Errorf("MCP server is disabled in config")
	}
	if cfg.MCP.Transport != "stdio" {
		return fmt.Errorf("unsupported MCP transport %q", cfg.MCP.Transport)
	}

	server := mcp.New(src, newSearcher(cfg, src), version)

	// Handle interrupt
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return server.Start(ctx)
}
