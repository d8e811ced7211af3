package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/biobuilder/internal/api"
	"github.com/ziadkadry99/biobuilder/internal/terminal"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models offered by the server",
	Long:  `Lists the server's models. The one marked * is used by ask and extract.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd, terminal.ShowModels)
		if err != nil {
			return err
		}
		if sess.ctrl.State().ModelsError {
			return shown(errors.New(api.MsgLoadModelsFailed))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
