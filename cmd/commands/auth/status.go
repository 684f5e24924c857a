package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/staffdesk/internal/app"
	"nathanbeddoewebdev/staffdesk/internal/config"
	"nathanbeddoewebdev/staffdesk/internal/services/auth"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether an API token is stored",
		Long: `Show whether an API token is stored and which API it will be sent to.

Example:
  staffdesk auth status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account := auth.NormalizeAccount(accountFlag(cmd))

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API:     %s\n", config.Resolve(cfg).APIURL)

			_, err = app.TokenStore().GetToken(account)
			switch {
			case err == nil:
				fmt.Fprintf(cmd.OutOrStdout(), "Account: %s (logged in)\n", account)
			case errors.Is(err, auth.ErrTokenNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "Account: %s (not logged in)\n", account)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Account: %s (error: %v)\n", account, err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
