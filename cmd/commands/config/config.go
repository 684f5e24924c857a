package config

import (
	"nathanbeddoewebdev/staffdesk/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage staffdesk configuration",
		Long: "View and modify persistent staffdesk settings.\n\n" +
			"Configuration is stored at ~/.config/staffdesk/config.json. The\n" +
			config.EnvAPIURL + " and " + config.EnvLogLevel + " environment variables (or a .env\n" +
			"file) override it for a single run.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
