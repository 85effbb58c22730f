package auth

import (
	"strings"

	"ironrod/dash/internal/services/auth"
	"ironrod/dash/internal/session"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the API gateway token",
		Long: `Manage the optional bearer token sent to the API gateway.

Tokens are kept in the OS keychain. When a token is stored for the
selected --gateway (default "gateway"), every panel fetch carries it in
an Authorization header.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(StatusCommand())
	cmd.AddCommand(LogoutCommand())

	return cmd
}

// gatewayName picks the gateway from the positional argument or the
// --gateway flag.
func gatewayName(cmd *cobra.Command, args []string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return auth.NormalizeGateway(args[0])
	}
	name, _ := cmd.Flags().GetString(session.FlagGateway)
	return auth.NormalizeGateway(name)
}
