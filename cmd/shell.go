package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/biobuilder/internal/shell"
	"github.com/ziadkadry99/biobuilder/internal/terminal"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell (the default command)",
	Long: `Starts an interactive session: upload and delete documents, ask questions
in Q&A mode, and run, filter and export extractions in extraction mode.
Type /help inside the shell for the command list.`,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd, terminal.ShowAll)
	if err != nil {
		return err
	}
	return shell.New(sess.ctrl, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
