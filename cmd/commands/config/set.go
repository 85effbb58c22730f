package config

import (
	"fmt"
	"strings"

	"ironrod/dash/internal/config"
	"ironrod/dash/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value. Omitting the value clears the\n" +
			"key so its default applies again.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  ironrod config set api-base-url https://gateway.example.com\n" +
			"  ironrod config set fetch-timeout 3s\n" +
			"  ironrod config set layout-file          # back to the built-in layout",
		Args: cobra.RangeArgs(1, 2),
		Run:  runSet,
	}

	return cmd
}

func runSet(cmd *cobra.Command, args []string) {
	spec := config.Lookup(util.NormalizeKey(args[0]))
	if spec == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: unknown configuration key %q\n", args[0])
		fmt.Fprintf(cmd.ErrOrStderr(), "Valid keys: %s\n", strings.Join(config.KeyNames(), ", "))
		return
	}

	value := ""
	if len(args) == 2 {
		value = args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	if err := spec.Apply(cfg, value); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	if stored := spec.Get(cfg); stored != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, stored)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s cleared\n", spec.Name)
	}
}
