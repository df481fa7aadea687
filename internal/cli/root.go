// Package cli defines the cobra command tree for homeport.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karimbakri/homeport/internal/app"
	"github.com/karimbakri/homeport/internal/config"
	"github.com/karimbakri/homeport/internal/logging"
)

var (
	flagDB  string
	flagDev bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "homeport",
		Short:         "Real estate customer app shell",
		Long:          "Browse listings, compare properties, switch roles, and pay community fees from an interactive shell. All state lives in a local SQLite database.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.homeport/homeport.db)")
	root.PersistentFlags().BoolVar(&flagDev, "dev", false, "enable debug logging and runtime checks")

	root.AddCommand(
		newSeedCmd(),
		newShellCmd(),
		newVersionCmd(),
	)

	return root
}

// newApp loads configuration, applies the global flags, and builds the
// application.
func newApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if flagDev {
		cfg.DevMode = true
	}

	logging.Setup(cfg.DevMode)

	return app.New(cfg)
}

// closeApp closes the application, printing any error to stderr.
func closeApp(cmd *cobra.Command, a *app.App) {
	if err := a.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
}
