package auth

import (
	"fmt"

	"ironrod/dash/internal/config"
	"ironrod/dash/internal/session"
	"ironrod/dash/internal/tui"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [gateway]",
		Short: "Show whether a gateway token is stored",
		Long: `Show whether a bearer token is stored for the gateway.

Example:
  ironrod auth status`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := tui.CheckGateways(session.OpenStore(), []string{gatewayName(cmd, args)})

			if session.Interactive(cmd.OutOrStdout()) {
				baseURL := config.DefaultAPIBaseURL
				if cfg, err := config.Load(); err == nil && cfg.APIBaseURL != "" {
					baseURL = cfg.APIBaseURL
				}
				if err := tui.RunAuthStatus(baseURL, statuses); err != nil {
					return fmt.Errorf("auth status failed: %w", err)
				}
				return nil
			}

			for _, gs := range statuses {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", gs.Name, gs.Status)
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
