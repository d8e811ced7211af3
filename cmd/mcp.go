package cmd

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/biobuilder/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Aliases: []string{"serve"},
	Short:   "Start the MCP server for AI agent integration",
	Long:    `Starts a Model Context Protocol (MCP) server on stdio, exposing document listing, question answering and entity extraction as tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		logger.Info("biobuilder MCP server started on stdio", "server", cfg.ServerURL)

		srv := mcpserver.NewServer(newClient(cfg, logger))
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
