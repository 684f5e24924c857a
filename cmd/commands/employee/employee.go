package employee

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/staffdesk/internal/app"
	"nathanbeddoewebdev/staffdesk/internal/tui"
	"nathanbeddoewebdev/staffdesk/internal/util"

	"github.com/spf13/cobra"
)

// NewCommand returns the "employee" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"employees"},
		Short:   "Manage employees",
		Long: `Browse, create and edit employees.

Run without a subcommand in a terminal to open the full-screen employee
manager. Set ACCESSIBLE=1 to use prompt-based forms instead. When stdout is
not a terminal the employee list is printed.

Examples:
  staffdesk employee
  staffdesk employee list -o json
  staffdesk employee create --name "Ada Lovelace" --email ada@example.com --phone "+44 20 7946 0958" --password hunter22
  staffdesk employee update --id 64f0c2 --phone "+44 20 7946 0000"`,
		Run: runManage,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(CreateCommand())
	cmd.AddCommand(UpdateCommand())

	return cmd
}

func runManage(cmd *cobra.Command, args []string) {
	sess, err := app.Open()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	defer sess.Close()

	if !util.IsTerminal(cmd.OutOrStdout()) {
		printList(cmd, sess, "table")
		return
	}

	if tui.Accessible() {
		runAccessible(cmd, sess)
		return
	}

	var activity tui.ActivitySource
	if sess.Audit != nil {
		activity = sess.Audit
	}
	ctx := app.Context(cmd.Context(), "tui")
	if err := tui.RunEmployeeApp(ctx, sess.Shell, sess.Service, activity); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
}

// runAccessible picks an employee (or a new one) and opens the prompt form.
func runAccessible(cmd *cobra.Command, sess *app.Session) {
	ctx := app.Context(cmd.Context(), "cli")

	records, err := sess.Service.List(ctx)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error listing employees: %v\n", err)
		return
	}

	rec, err := tui.SelectEmployee(records, true, true)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
			return
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	runForm(cmd, sess, rec, true)
}
