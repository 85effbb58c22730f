package cmd

import (
	"os"

	"ironrod/dash/cmd/commands/auth"
	cfgcmd "ironrod/dash/cmd/commands/config"
	"ironrod/dash/cmd/commands/dashboard"
	"ironrod/dash/cmd/commands/scorecard"
	"ironrod/dash/cmd/commands/snapshot"
	"ironrod/dash/internal/session"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "ironrod",
		Short: "A terminal dashboard for accounting metrics",
		Long: `ironrod polls an accounting API gateway and renders profit & loss,
balance sheet, revenue and weekly scorecard panels in the terminal.

Panels refresh on their own schedule. A failed refresh never clears a
panel: the last good data stays on screen with a note about the failure.

Quick start:
  ironrod config set api-base-url http://localhost:8001
  ironrod dashboard                # live charts
  ironrod scorecard --history      # weekly scorecard, every period
  ironrod snapshot -o json         # fetch everything once`,
		SilenceUsage: true,
	}

	session.AddFlags(cmd)

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(dashboard.NewCommand())
	cmd.AddCommand(scorecard.NewCommand())
	cmd.AddCommand(snapshot.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
