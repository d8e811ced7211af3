package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	serverURL string
	modelID   string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "biobuilder",
	Short: "Terminal client for the BioBuilder document QA and extraction API",
	Long: `BioBuilder uploads PDF and text documents to a BioBuilder server, answers
questions about them and extracts genes, proteins and the relationships
between them. Run it without a subcommand for the interactive shell, or
use the one-shot commands from scripts. It also serves the same
operations to AI agents over MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd, args)
	},
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	var shown *shownError
	if err != nil && !errors.As(err, &shown) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".biobuilder.yml", "config file path")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "BioBuilder server URL (overrides server_url)")
	rootCmd.PersistentFlags().StringVar(&modelID, "model", "", "model id (overrides model)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// shownError marks a failure the surface has already reported, so Execute
// only sets the exit status.
type shownError struct{ err error }

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return &shownError{err: err}
}
