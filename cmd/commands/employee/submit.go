package employee

import (
	"context"
	"errors"
	"fmt"

	"nathanbeddoewebdev/staffdesk/internal/app"
	"nathanbeddoewebdev/staffdesk/internal/employee"
	"nathanbeddoewebdev/staffdesk/internal/employee/form"
	"nathanbeddoewebdev/staffdesk/internal/tui"
	"nathanbeddoewebdev/staffdesk/internal/util"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

// runForm opens the prompt-based form for rec (nil creates) and reports
// the outcome.
func runForm(cmd *cobra.Command, sess *app.Session, rec *employee.Record, accessible bool) {
	mode := employee.ModeCreate
	if rec != nil {
		mode = employee.ModeEdit
	}
	ctx := app.Context(cmd.Context(), "cli")
	out, err := tui.RunEmployeeForm(ctx, sess.Service, rec, accessible)
	if errors.Is(err, tui.ErrAborted) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
		return
	}
	report(cmd, mode, out, err)
}

// submit sends the dialog's mutation, showing a spinner when stderr is a
// terminal.
func submit(cmd *cobra.Command, ctx context.Context, api employee.Mutator, d *form.Dialog) (*employee.Record, error) {
	if !util.IsTerminal(cmd.ErrOrStderr()) {
		return d.SubmitAndWait(ctx, api)
	}

	title := "Creating employee..."
	if d.Mode() == employee.ModeEdit {
		title = "Saving changes..."
	}

	var rec *employee.Record
	var submitErr error
	spinErr := spinner.New().
		Title(title).
		Accessible(tui.Accessible()).
		Output(cmd.ErrOrStderr()).
		ActionWithErr(func(sctx context.Context) error {
			rec, submitErr = d.SubmitAndWait(sctx, api)
			return nil
		}).
		Context(ctx).
		Run()
	if spinErr != nil {
		return nil, spinErr
	}
	return rec, submitErr
}

var reportOrder = []employee.Field{
	employee.FieldName,
	employee.FieldEmail,
	employee.FieldPhoneNo,
	employee.FieldPassword,
	employee.FieldRole,
}

// report prints the outcome of a mutation. Field errors are listed one per
// line in form order.
func report(cmd *cobra.Command, mode employee.Mode, rec *employee.Record, err error) {
	if err != nil {
		var verr *employee.ValidationError
		if errors.As(err, &verr) && len(verr.Fields) > 0 {
			msg := verr.Message
			if msg == "" {
				msg = "validation failed"
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", msg)
			for _, f := range reportOrder {
				if fieldMsg, ok := verr.Fields[f]; ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", f.Label(), fieldMsg)
				}
			}
			return
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	verb := "created"
	if mode == employee.ModeEdit {
		verb = "updated"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Employee %q %s successfully (ID: %s).\n", rec.Name, verb, rec.ID)
}
