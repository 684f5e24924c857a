package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"nathanbeddoewebdev/staffdesk/internal/employee"
	"nathanbeddoewebdev/staffdesk/internal/employee/form"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ErrAborted is returned when a user cancels the interactive flow.
var ErrAborted = errors.New("aborted by user")

// Accessible reports whether screen-reader friendly forms were requested
// through the ACCESSIBLE environment variable.
func Accessible() bool {
	return os.Getenv("ACCESSIBLE") != ""
}

// RunEmployeeForm collects employee fields with a huh form and submits them
// through the same dialog state machine the full-screen app uses. A nil rec
// creates; otherwise rec is edited and no password is asked for. When the
// server rejects the submission the form is shown again with the entered
// values and the error, until it succeeds or the user cancels.
func RunEmployeeForm(ctx context.Context, api employee.Mutator, rec *employee.Record, accessible bool) (*employee.Record, error) {
	d := form.New()
	d.Open(rec)
	values := d.Values()

	for {
		confirm := true
		err := newEmployeeHuhForm(d, &values, &confirm).WithAccessible(accessible).Run()
		if err != nil {
			d.Cancel()
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrAborted
			}
			return nil, err
		}
		if !confirm {
			d.Cancel()
			return nil, ErrAborted
		}

		for _, f := range d.Fields() {
			d.SetField(f, values.Get(f))
		}

		var out *employee.Record
		var submitErr error
		spinErr := spinner.New().
			Title(submittingTitle(d.Mode())).
			Accessible(accessible).
			Output(os.Stderr).
			ActionWithErr(func(sctx context.Context) error {
				out, submitErr = d.SubmitAndWait(sctx, api)
				return nil
			}).
			Context(ctx).
			Run()
		if spinErr != nil {
			return nil, spinErr
		}
		if submitErr == nil {
			return out, nil
		}
		if !d.IsOpen() || errors.Is(submitErr, context.Canceled) {
			return nil, submitErr
		}
		values = d.Values()
	}
}

// newEmployeeHuhForm builds the field group for d's mode, followed by a
// confirmation. Errors from the last failed submission are shown as
// descriptions.
func newEmployeeHuhForm(d *form.Dialog, values *employee.FormState, confirm *bool) *huh.Form {
	mode := d.Mode()
	fields := make([]huh.Field, 0, len(d.Fields()))
	for _, f := range d.Fields() {
		in := huh.NewInput().
			Title(f.Label()).
			Description(d.FieldError(f)).
			Value(fieldPtr(values, f)).
			Validate(fieldCheck(values, mode, f))
		if f == employee.FieldPassword {
			in = in.EchoMode(huh.EchoModePassword)
		}
		fields = append(fields, in)
	}

	confirmField := huh.NewConfirm().
		Title(d.SubmitLabel() + "?").
		Affirmative(d.SubmitLabel()).
		Negative("Cancel").
		Value(confirm)

	return huh.NewForm(
		huh.NewGroup(fields...).Title(d.Title()).Description(submitFailureNote(d)),
		huh.NewGroup(confirmField),
	)
}

// submitFailureNote describes the last failed submission of d, including
// server field errors that have no input in the current mode. It is empty
// when nothing failed.
func submitFailureNote(d *form.Dialog) string {
	err := d.SubmitError()
	if err == nil {
		return ""
	}
	errs := d.FieldErrors()
	for _, f := range d.Fields() {
		delete(errs, f)
	}
	lines := make([]string, 0, len(errs))
	for f, msg := range errs {
		lines = append(lines, fmt.Sprintf("%s: %s", f.Label(), msg))
	}
	sort.Strings(lines)
	return strings.Join(append([]string{mutationErrorText(err)}, lines...), "\n")
}

func submittingTitle(mode employee.Mode) string {
	if mode == employee.ModeEdit {
		return "Saving changes..."
	}
	return "Creating employee..."
}

func fieldPtr(s *employee.FormState, f employee.Field) *string {
	switch f {
	case employee.FieldName:
		return &s.Name
	case employee.FieldEmail:
		return &s.Email
	case employee.FieldPhoneNo:
		return &s.PhoneNo
	case employee.FieldPassword:
		return &s.Password
	}
	return &s.Role
}

// fieldCheck validates f in the context of the rest of the form. Errors on
// other fields are ignored so each input can be checked as it is filled.
func fieldCheck(values *employee.FormState, mode employee.Mode, f employee.Field) func(string) error {
	return func(v string) error {
		s := *values
		s.Set(f, v)
		if msg := employee.Validate(s, mode).FieldErrors[f]; msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

const newEmployeeOption = "\x00new"

// SelectEmployee asks the user to pick one of records. With allowNew a
// "New employee" option is offered first and choosing it returns nil.
func SelectEmployee(records []employee.Record, allowNew, accessible bool) (*employee.Record, error) {
	opts := make([]huh.Option[string], 0, len(records)+1)
	if allowNew {
		opts = append(opts, huh.NewOption("+ New employee", newEmployeeOption))
	}
	for _, r := range records {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s <%s>", r.Name, r.Email), r.ID))
	}
	if len(opts) == 0 {
		return nil, fmt.Errorf("no employees found")
	}

	var choice string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Employee").
				Options(opts...).
				Value(&choice),
		),
	).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		return nil, err
	}

	if choice == newEmployeeOption {
		return nil, nil
	}
	for i := range records {
		if records[i].ID == choice {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, employee.ErrNotFound
}
