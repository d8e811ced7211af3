package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/biobuilder/internal/api"
	"github.com/ziadkadry99/biobuilder/internal/config"
	"github.com/ziadkadry99/biobuilder/internal/controller"
	"github.com/ziadkadry99/biobuilder/internal/logging"
	"github.com/ziadkadry99/biobuilder/internal/progress"
	"github.com/ziadkadry99/biobuilder/internal/terminal"
)

// loadConfig loads the config, applies flag overrides and validates it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `biobuilder init` to create a config file", err)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if modelID != "" {
		cfg.Model = modelID
	}
	if verbose {
		cfg.LogLevel = config.LogDebug
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger writes to stderr so stdout stays free for output and MCP.
func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(os.Stderr, string(cfg.LogLevel))
}

func newClient(cfg *config.Config, logger *slog.Logger) *api.Client {
	return api.NewClient(cfg.ServerURL,
		api.WithTimeout(cfg.Timeout()),
		api.WithLogger(logger),
	)
}

// session is a started controller bound to a terminal surface.
type session struct {
	cfg     *config.Config
	ctrl    *controller.Controller
	surface *terminal.Surface
}

// newSession loads config, connects to the server and runs startup. Only
// the given sections are printed during startup.
func newSession(cmd *cobra.Command, sections terminal.Section) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)
	logger.Debug("connecting", "server", cfg.ServerURL, "config", cfgFile)

	surface := terminal.New(cmd.OutOrStdout(), cmd.ErrOrStderr(),
		terminal.WithSections(sections),
		terminal.WithExportDir(cfg.ExportDir),
		terminal.WithColor(!cfg.NoColor && os.Getenv("NO_COLOR") == ""),
	)
	ctrl := controller.New(newClient(cfg, logger), surface,
		controller.WithLogger(logger),
		controller.WithPreferredModel(cfg.Model),
		controller.WithProgress(progress.NewReporter(cmd.ErrOrStderr())),
	)
	ctrl.Start(cmd.Context())

	return &session{cfg: cfg, ctrl: ctrl, surface: surface}, nil
}
