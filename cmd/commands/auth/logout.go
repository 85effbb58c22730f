package auth

import (
	"errors"
	"fmt"

	"ironrod/dash/internal/services/auth"
	"ironrod/dash/internal/session"
	"ironrod/dash/internal/tui"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout [gateway]",
		Short: "Remove the stored gateway token",
		Long: `Remove the bearer token stored for the gateway.

On a terminal you are asked to confirm unless --yes is given.

Example:
  ironrod auth logout --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway := gatewayName(cmd, args)
			yes, _ := cmd.Flags().GetBool("yes")

			if !yes && session.Interactive(cmd.InOrStdin()) {
				ok, err := tui.ConfirmLogout(gateway)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.ErrOrStderr(), "Logout cancelled.")
					return nil
				}
			}

			err := session.OpenStore().DeleteToken(gateway)
			switch {
			case errors.Is(err, auth.ErrTokenNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "No token stored for gateway %s\n", gateway)
				return nil
			case err != nil:
				return fmt.Errorf("failed to remove token: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed token for gateway %s\n", gateway)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	return cmd
}
