package theme

import (
	"fmt"

	"nathanbeddoewebdev/staffdesk/internal/theme"

	"github.com/spf13/cobra"
)

func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <light|dark>",
		Short: "Save a theme mode",
		Long: `Save a theme mode for future sessions.

Examples:
  staffdesk theme set dark`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := theme.ParseMode(args[0])
			if err != nil {
				return err
			}

			sh, err := openShell()
			if err != nil {
				return err
			}
			defer sh.Close()

			sh.SetMode(mode)
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", sh.Mode())
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}

func ToggleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := openShell()
			if err != nil {
				return err
			}
			defer sh.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", sh.Toggle())
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}

func ResetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved theme and follow the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := openShell()
			if err != nil {
				return err
			}
			defer sh.Close()

			mode := sh.ResetMode(darkPreference)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved theme cleared; using %s from the terminal background.\n", mode)
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
