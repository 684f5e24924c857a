package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/staffdesk/internal/config"
	"nathanbeddoewebdev/staffdesk/internal/logging"
	"nathanbeddoewebdev/staffdesk/internal/shell"
	"nathanbeddoewebdev/staffdesk/internal/tui"
	"nathanbeddoewebdev/staffdesk/internal/util"

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
			"  staffdesk config get              # interactive viewer\n" +
			"  staffdesk config get api-url      # print a single value",
		Args:         cobra.MaximumNArgs(1),
		RunE:         runGet,
		SilenceUsage: true,
	}

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	keyArg := ""
	if len(args) == 1 {
		keyArg = strings.TrimSpace(args[0])
	}

	// No key: open interactive config viewer.
	if keyArg == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if util.IsTerminal(cmd.OutOrStdout()) {
			sh := shell.New(shell.Options{
				Store:  config.NewThemeStore(),
				Logger: logging.NewOrNop(config.Resolve(cfg).LogLevel),
			})
			defer sh.Close()
			if err := tui.RunConfigView(sh); err != nil {
				return fmt.Errorf("config view failed: %w", err)
			}
			return nil
		}

		// Non-interactive: list all values.
		for _, spec := range config.Keys {
			value := spec.Get(cfg)
			if value == "" {
				value = "(not set)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", spec.Name, value)
		}
		return nil
	}

	key := util.NormalizeKey(keyArg)

	spec := config.Lookup(key)
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", keyArg, strings.Join(config.KeyNames(), ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	value := spec.Get(cfg)
	if value == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "not set")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), value)
	}
	return nil
}
