package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/biobuilder/internal/terminal"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about all uploaded documents",
	Example: `  biobuilder ask "What does TP53 regulate?"
  biobuilder ask --model llama3 which genes are mentioned`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd, terminal.ShowTranscript)
		if err != nil {
			return err
		}
		return shown(sess.ctrl.AskQuestion(cmd.Context(), strings.Join(args, " ")))
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
