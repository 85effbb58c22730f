package config

import (
	"ironrod/dash/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ironrod configuration",
		Long: "View and modify persistent ironrod settings.\n\n" +
			"Configuration is stored at ~/.config/ironrod/config.json.\n" +
			"Flags such as --base-url override these values for a single run.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
