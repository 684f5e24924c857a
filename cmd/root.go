package cmd

import (
	"os"

	"nathanbeddoewebdev/staffdesk/cmd/commands/audit"
	"nathanbeddoewebdev/staffdesk/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/staffdesk/cmd/commands/config"
	"nathanbeddoewebdev/staffdesk/cmd/commands/employee"
	"nathanbeddoewebdev/staffdesk/cmd/commands/theme"
	"nathanbeddoewebdev/staffdesk/internal/config"

	"github.com/spf13/cobra"
)

func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "staffdesk",
		Short: "Staff administration console",
		Long: `staffdesk manages employee accounts against the staff API from the
terminal.

Run "staffdesk employee" to open the employee manager.`,
	}

	cmd.AddCommand(employee.NewCommand())
	cmd.AddCommand(theme.NewCommand())
	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(audit.NewCommand())

	return cmd
}

func Execute() {
	config.LoadEnv()
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
