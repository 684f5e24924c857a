package theme

import (
	"fmt"

	"nathanbeddoewebdev/staffdesk/internal/config"
	"nathanbeddoewebdev/staffdesk/internal/logging"
	"nathanbeddoewebdev/staffdesk/internal/shell"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// darkPreference is the terminal background probe used when no mode is saved.
var darkPreference shell.DarkPreference = lipgloss.HasDarkBackground

// NewCommand returns the "theme" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the color theme",
		Long: "Show or change the light/dark color theme used by the staffdesk TUI.\n\n" +
			"The choice is saved in the config file. With nothing saved, the theme\n" +
			"follows the terminal background.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(ToggleCommand())
	cmd.AddCommand(SetCommand())
	cmd.AddCommand(ResetCommand())

	return cmd
}

// openShell builds a shell over the persisted theme store.
func openShell() (*shell.Shell, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	rt := config.Resolve(cfg)
	return shell.New(shell.Options{
		Store:          config.NewThemeStore(),
		DarkPreference: darkPreference,
		Logger:         logging.NewOrNop(rt.LogLevel),
	}), nil
}
