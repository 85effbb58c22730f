package dashboard

import (
	"errors"
	"fmt"

	dash "ironrod/dash/internal/dashboard"
	"ironrod/dash/internal/session"
	"ironrod/dash/internal/tui"

	"github.com/spf13/cobra"
)

// NewCommand returns the "dashboard" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show live charts for every chart panel",
		Long: `Open the live dashboard. Every line and bar panel in the layout is
fetched immediately; panels with pollIntervalMs keep refreshing on that
schedule until you quit.

Keys: j/k scroll, tab focus, r refresh all, q quit.

Example:
  ironrod dashboard --base-url https://gateway.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !session.Interactive(cmd.OutOrStdout()) {
				return errors.New("dashboard needs an interactive terminal; use \"ironrod snapshot\" instead")
			}

			s, err := session.FromCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := s.Composer(func(p dash.PanelConfig) bool { return p.Kind.Chart() })
			if err != nil {
				return err
			}
			if err := c.Start(); err != nil {
				return fmt.Errorf("failed to start dashboard: %w", err)
			}

			return tui.RunDashboard(c, tui.DashboardOptions{
				Title:      s.Layout.Title,
				Breadcrumb: "dashboard",
				Gateway:    s.GatewayLabel(),
				Currency:   s.Settings.Currency,
			})
		},
	}

	return cmd
}
