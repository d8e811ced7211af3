package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/biobuilder/internal/controller"
	"github.com/ziadkadry99/biobuilder/internal/terminal"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file|glob>...",
	Short: "Upload PDF or TXT documents",
	Long: `Uploads files one at a time in the order given. Glob patterns, including
**, are expanded. A failed file is reported and the rest still upload.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := controller.ExpandPaths(args)
		if err != nil {
			return err
		}
		sess, err := newSession(cmd, 0)
		if err != nil {
			return err
		}

		uploadErr := sess.ctrl.UploadFiles(cmd.Context(), paths)

		sess.surface.Show(terminal.ShowDocuments)
		sess.ctrl.Refresh(cmd.Context())
		return shown(uploadErr)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
