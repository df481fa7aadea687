package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karimbakri/homeport/internal/app"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install the demo dataset",
		Long:  "Install demo users, listings, notifications, and a payable account into the local database. Safe to rerun.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)

			if err := a.Seed(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Demo data installed.")
			fmt.Fprintf(cmd.OutOrStdout(), "Sign in with %s or %s (password: %s)\n",
				app.DemoBrokerEmail, app.DemoHomeownerEmail, app.DemoPassword)
			return nil
		},
	}
}
