package config

import (
	"fmt"
	"io"
	"strings"

	"ironrod/dash/internal/config"
	"ironrod/dash/internal/session"
	"ironrod/dash/internal/tui"
	"ironrod/dash/internal/util"

	"github.com/spf13/cobra"
)

// GetCommand returns the "config get" command.
func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value",
		Long: "Get a persistent configuration value.\n\n" +
			"If no key is provided and running in a terminal, opens an interactive\n" +
			"config viewer where you can browse and edit all settings.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  ironrod config get                  # interactive viewer\n" +
			"  ironrod config get fetch-timeout    # print a single value",
		Args:         cobra.MaximumNArgs(1),
		RunE:         runGet,
		SilenceUsage: true,
	}

	cmd.Flags().String("key", "", "Configuration key to fetch (same as the positional argument)")

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	keyArg, _ := cmd.Flags().GetString("key")
	if len(args) == 1 {
		keyArg = args[0]
	}
	keyArg = strings.TrimSpace(keyArg)

	if keyArg == "" {
		if session.Interactive(cmd.OutOrStdout()) {
			if err := tui.RunConfigView(); err != nil {
				return fmt.Errorf("config view failed: %w", err)
			}
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		for _, spec := range config.Keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ", spec.Name)
			printValue(cmd.OutOrStdout(), spec, cfg)
		}
		return nil
	}

	spec := config.Lookup(util.NormalizeKey(keyArg))
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", keyArg, strings.Join(config.KeyNames(), ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	printValue(cmd.OutOrStdout(), *spec, cfg)
	return nil
}

func printValue(w io.Writer, spec config.KeySpec, cfg *config.Config) {
	value := spec.Get(cfg)
	switch {
	case value != "":
		fmt.Fprintln(w, value)
	case spec.Default != "":
		fmt.Fprintf(w, "%s (default)\n", spec.Default)
	default:
		fmt.Fprintln(w, "not set")
	}
}
