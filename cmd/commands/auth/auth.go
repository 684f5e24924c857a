package auth

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the employee API token",
		Long: `Manage the employee API token.

Tokens are stored in the OS keychain and sent as a bearer token with every
API request. Use --account to keep tokens for more than one environment.`,
	}

	cmd.PersistentFlags().String("account", "", "Keychain account name (default \"default\")")

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(StatusCommand())
	cmd.AddCommand(LogoutCommand())

	return cmd
}

func accountFlag(cmd *cobra.Command) string {
	account, _ := cmd.Flags().GetString("account")
	return account
}
