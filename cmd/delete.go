package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/biobuilder/internal/terminal"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete uploaded documents by id",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd, 0)
		if err != nil {
			return err
		}

		var errs []error
		for _, id := range args {
			errs = append(errs, sess.ctrl.DeleteDocument(cmd.Context(), id))
		}

		sess.surface.Show(terminal.ShowDocuments)
		sess.ctrl.Refresh(cmd.Context())
		return shown(errors.Join(errs...))
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
