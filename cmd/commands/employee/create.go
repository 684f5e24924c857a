package employee

import (
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/staffdesk/internal/app"
	"nathanbeddoewebdev/staffdesk/internal/employee"
	"nathanbeddoewebdev/staffdesk/internal/employee/form"
	"nathanbeddoewebdev/staffdesk/internal/tui"
	"nathanbeddoewebdev/staffdesk/internal/util"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an employee",
		Long: `Create a new employee account.

With no flags in a terminal, an interactive form asks for each field. If
--password is omitted in a terminal, it is read without echo.

Examples:
  # Interactive mode
  staffdesk employee create

  # Non-interactive (scripting)
  staffdesk employee create --name "Ada Lovelace" --email ada@example.com \
    --phone "+44 20 7946 0958" --password hunter22`,
		Run: runCreate,
	}

	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("password", "", "Initial password (prompted when omitted in a terminal)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) {
	sess, err := app.Open()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	defer sess.Close()

	interactive := util.IsTerminal(cmd.InOrStdin())
	if interactive && cmd.Flags().NFlag() == 0 {
		runForm(cmd, sess, nil, tui.Accessible())
		return
	}

	d := form.New()
	d.Open(nil)
	setFromFlag(cmd, d, "name", employee.FieldName)
	setFromFlag(cmd, d, "email", employee.FieldEmail)
	setFromFlag(cmd, d, "phone", employee.FieldPhoneNo)
	setFromFlag(cmd, d, "password", employee.FieldPassword)

	if d.Field(employee.FieldPassword) == "" && interactive {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		d.SetField(employee.FieldPassword, strings.TrimSpace(string(raw)))
	}

	rec, err := submit(cmd, app.Context(cmd.Context(), "cli"), sess.Service, d)
	report(cmd, employee.ModeCreate, rec, err)
}

// setFromFlag copies a flag into the dialog when it was given.
func setFromFlag(cmd *cobra.Command, d *form.Dialog, flag string, f employee.Field) {
	if !cmd.Flags().Changed(flag) {
		return
	}
	v, _ := cmd.Flags().GetString(flag)
	d.SetField(f, v)
}
