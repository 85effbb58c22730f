package auth

import (
	"bufio"
	"fmt"
	"strings"

	"ironrod/dash/internal/session"
	"ironrod/dash/internal/tui"
	"ironrod/dash/internal/util"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [gateway]",
		Short: "Store a bearer token for the API gateway",
		Long: `Store a bearer token for the API gateway using the local keychain.

On a terminal you are prompted for the token. Otherwise pass --token or
pipe the token on stdin.

Examples:
  ironrod auth login
  ironrod auth login staging --token "$STAGING_TOKEN"
  vault read -field=token secret/qbo | ironrod auth login`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			gateway := gatewayName(cmd, args)
			store := session.OpenStore()

			token, _ := cmd.Flags().GetString("token")
			token = strings.TrimSpace(token)

			if token == "" && session.Interactive(cmd.InOrStdin()) {
				result, err := tui.RunAuthLogin(gateway, store)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
					return
				}
				if result == nil || !result.Saved {
					fmt.Fprintln(cmd.ErrOrStderr(), "Login cancelled.")
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved token for gateway %s\n", gateway)
				return
			}

			if token == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					fmt.Fprintln(cmd.ErrOrStderr(), "Error: no token given (use --token or pipe it on stdin)")
					return
				}
				token = strings.TrimSpace(line)
			}

			if err := util.ValidateToken(token); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return
			}

			if err := store.SetToken(gateway, token); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved token for gateway %s\n", gateway)
		},
	}

	cmd.Flags().String("token", "", "bearer token (optional, overrides prompt)")

	return cmd
}
