package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/staffdesk/internal/app"
	"nathanbeddoewebdev/staffdesk/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			account := auth.NormalizeAccount(accountFlag(cmd))

			err := app.TokenStore().DeleteToken(account)
			switch {
			case err == nil:
				fmt.Fprintf(cmd.OutOrStdout(), "Removed token for account %s\n", account)
			case errors.Is(err, auth.ErrTokenNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "No token stored for account %s\n", account)
			default:
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
		},
	}

	return cmd
}
