package auth

import (
	"bufio"
	"fmt"
	"strings"

	"nathanbeddoewebdev/staffdesk/internal/app"
	"nathanbeddoewebdev/staffdesk/internal/config"
	"nathanbeddoewebdev/staffdesk/internal/services/auth"
	"nathanbeddoewebdev/staffdesk/internal/shell"
	"nathanbeddoewebdev/staffdesk/internal/tui"
	"nathanbeddoewebdev/staffdesk/internal/util"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token",
		Long: `Store an API token in the local keychain.

In a terminal the token is entered in a masked prompt. Otherwise it is read
from the first line of stdin.

Examples:
  staffdesk auth login
  staffdesk auth login --token "$STAFF_TOKEN"
  echo "$STAFF_TOKEN" | staffdesk auth login --account staging`,
		Args: cobra.NoArgs,
		Run:  runLogin,
	}

	cmd.Flags().String("token", "", "API token (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) {
	account := auth.NormalizeAccount(accountFlag(cmd))
	store := app.TokenStore()

	token, _ := cmd.Flags().GetString("token")
	token = strings.TrimSpace(token)

	if token == "" && util.IsTerminal(cmd.InOrStdin()) && util.IsTerminal(cmd.OutOrStdout()) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		sh := shell.New(shell.Options{Store: config.NewThemeStore()})
		defer sh.Close()

		result, err := tui.RunAuthLogin(sh.Styles(), store, account, config.Resolve(cfg).APIURL)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		if result == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Login cancelled.")
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved token for account %s\n", account)
		return
	}

	if token == "" {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error: no token provided")
			return
		}
		token = strings.TrimSpace(line)
	}

	if token == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error: token cannot be empty")
		return
	}

	if err := store.SetToken(account, token); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved token for account %s\n", account)
}
