package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/biobuilder/internal/api"
	"github.com/ziadkadry99/biobuilder/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize biobuilder configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that checks the server, picks a default model and writes .biobuilder.yml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cmd.Context(), cfgFile, func(ctx context.Context, url string) ([]api.Model, error) {
			return api.NewClient(url, api.WithTimeout(10*time.Second)).ListModels(ctx)
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
