package employee

import (
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/staffdesk/internal/app"
	"nathanbeddoewebdev/staffdesk/internal/employee"
	"nathanbeddoewebdev/staffdesk/internal/employee/form"
	"nathanbeddoewebdev/staffdesk/internal/tui"
	"nathanbeddoewebdev/staffdesk/internal/util"

	"github.com/spf13/cobra"
)

func UpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edit an employee",
		Long: `Edit an existing employee's name, email or phone number.

Passwords cannot be changed here. If --id is omitted in a terminal, you pick
the employee from a list. If no field flags are given in a terminal, an
interactive form is opened with the current values.

Examples:
  # Interactive mode
  staffdesk employee update

  # Non-interactive (scripting)
  staffdesk employee update --id 64f0c2 --email ada@example.org`,
		Run: runUpdate,
	}

	cmd.Flags().String("id", "", "Employee ID (skips interactive selection)")
	cmd.Flags().String("name", "", "New full name")
	cmd.Flags().String("email", "", "New email address")
	cmd.Flags().String("phone", "", "New phone number")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) {
	sess, err := app.Open()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	defer sess.Close()

	ctx := app.Context(cmd.Context(), "cli")
	interactive := util.IsTerminal(cmd.InOrStdin())
	id, _ := cmd.Flags().GetString("id")
	id = strings.TrimSpace(id)

	var rec *employee.Record
	if id == "" {
		if !interactive {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error: --id is required when not running in a terminal")
			return
		}
		records, err := sess.Service.List(ctx)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error listing employees: %v\n", err)
			return
		}
		rec, err = tui.SelectEmployee(records, false, tui.Accessible())
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
				return
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
	} else {
		rec, err = sess.Service.Get(ctx, id)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
	}

	changed := cmd.Flags().Changed("name") || cmd.Flags().Changed("email") || cmd.Flags().Changed("phone")
	if !changed {
		if !interactive {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error: nothing to update (use --name, --email or --phone)")
			return
		}
		runForm(cmd, sess, rec, tui.Accessible())
		return
	}

	d := form.New()
	d.Open(rec)
	setFromFlag(cmd, d, "name", employee.FieldName)
	setFromFlag(cmd, d, "email", employee.FieldEmail)
	setFromFlag(cmd, d, "phone", employee.FieldPhoneNo)

	out, err := submit(cmd, ctx, sess.Service, d)
	report(cmd, employee.ModeEdit, out, err)
}
