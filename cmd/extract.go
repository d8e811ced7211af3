package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/biobuilder/internal/state"
	"github.com/ziadkadry99/biobuilder/internal/terminal"
)

var (
	extractGenes     string
	extractRelations string
	extractFilter    string
	extractExport    string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract genes, proteins and their relationships from all documents",
	Example: `  biobuilder extract
  biobuilder extract --genes "TP53, BRCA1" --relations inhibits
  biobuilder extract --filter kinase --export csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd, 0)
		if err != nil {
			return err
		}
		if err := sess.ctrl.SwitchMode(string(state.ModeExtraction)); err != nil {
			return shown(err)
		}

		sess.surface.Show(terminal.ShowExtraction)
		if err := sess.ctrl.ExtractEntities(cmd.Context(), extractGenes, extractRelations); err != nil {
			return shown(err)
		}
		if extractFilter != "" {
			sess.ctrl.FilterResults(extractFilter)
		}
		if extractExport != "" {
			if _, err := sess.ctrl.ExportResults(extractExport); err != nil {
				return shown(err)
			}
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractGenes, "genes", "", "comma-separated genes or proteins to focus on")
	extractCmd.Flags().StringVar(&extractRelations, "relations", "", "comma-separated relationship types to focus on")
	extractCmd.Flags().StringVar(&extractFilter, "filter", "", "only show cards containing this text")
	extractCmd.Flags().StringVar(&extractExport, "export", "", "save the result as json or csv")
	rootCmd.AddCommand(extractCmd)
}
