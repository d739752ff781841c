package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/mcptools"
	"github.com/chris-regnier/moodiary/internal/notify"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes diary tools
over stdio transport. This allows MCP clients like Claude Desktop to read
and write your diary.

Available tools:
  - get_day_entry: The entry for one day
  - list_month: Every entry of a month with its average mood
  - mood_stats: Average mood, distribution, tags and streak
  - create_entry: Write or replace the entry for a day

Example usage in Claude Desktop config:
  {
    "mcpServers": {
      "moodiary": {
        "command": "/path/to/moodiary",
        "args": ["mcp-serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	server, unsubscribe := mcptools.CreateMCPServer(mcptools.Config{
		Store:       store,
		Bus:         do.MustInvoke[*notify.Bus](injector),
		Location:    location(),
		DefaultMood: appConfig.DefaultMood,
		Version:     version,
		Logger:      appLogger.With("component", "mcp"),
		Now:         now,
	})
	defer unsubscribe()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout carries the protocol; the logger writes to stderr.
	appLogger.Info("starting MCP server", "transport", "stdio", "storage", appConfig.Storage, "data_dir", appConfig.DataDir)
	return server.Run(ctx, &mcp.StdioTransport{})
}
