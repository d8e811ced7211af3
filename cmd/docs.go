package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/biobuilder/internal/terminal"
)

var docsCmd = &cobra.Command{
	Use:     "docs",
	Aliases: []string{"documents", "ls"},
	Short:   "List uploaded documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := newSession(cmd, terminal.ShowDocuments)
		return err
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
