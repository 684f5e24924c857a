// Package form is the employee dialog state machine. It holds no UI code;
// internal/tui renders it and feeds key presses and mutation results back in.
//
// A Dialog is not safe for concurrent use. It is driven from the Bubble Tea
// update loop, and mutations report back through Resolve.
package form

import (
	"context"
	"errors"
	"fmt"

	"nathanbeddoewebdev/staffdesk/internal/employee"
)

// State is the dialog lifecycle state.
type State int

const (
	Closed State = iota
	Create
	Edit
	Submitting
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Create:
		return "create"
	case Edit:
		return "edit"
	case Submitting:
		return "submitting"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrNotOpen is returned by SubmitAndWait when the dialog is closed or
// already submitting.
var ErrNotOpen = errors.New("dialog is not accepting input")

// Mutation is one submitted create or update. It carries a context that is
// cancelled when the dialog closes or reopens.
type Mutation struct {
	Mode   employee.Mode
	Create employee.CreatePayload
	Update employee.UpdatePayload

	ctx    context.Context
	cancel context.CancelFunc
	gen    uint64
}

// Context returns the context the mutation must run under.
func (m *Mutation) Context() context.Context { return m.ctx }

// Dialog is the employee create/edit dialog.
type Dialog struct {
	state State
	mode  employee.Mode

	record *employee.Record
	values employee.FormState

	fieldErrors map[employee.Field]string
	submitErr   error

	passwordVisible bool

	// gen increments on every open and close so results from an earlier
	// open are recognized as stale.
	gen      uint64
	inflight *Mutation
}

// New returns a closed dialog.
func New() *Dialog {
	return &Dialog{values: employee.EmptyForm()}
}

// State returns the current lifecycle state.
func (d *Dialog) State() State { return d.state }

// IsOpen reports whether the dialog is visible.
func (d *Dialog) IsOpen() bool { return d.state != Closed }

// Pending reports whether a mutation is in flight.
func (d *Dialog) Pending() bool { return d.state == Submitting }

// Mode returns the mode chosen at the last Open.
func (d *Dialog) Mode() employee.Mode { return d.mode }

// Record returns the record being edited, or nil in create mode.
func (d *Dialog) Record() *employee.Record { return d.record }

// Title returns the dialog heading for the current mode.
func (d *Dialog) Title() string {
	if d.mode == employee.ModeEdit {
		return "Edit Employee"
	}
	return "Create New Employee"
}

// SubmitLabel returns the submit button text for the current mode.
func (d *Dialog) SubmitLabel() string {
	if d.mode == employee.ModeEdit {
		return "Save Changes"
	}
	return "Save"
}

// Fields returns the fields shown for the current mode. The password is
// only collected when creating.
func (d *Dialog) Fields() []employee.Field {
	if d.mode == employee.ModeEdit {
		return []employee.Field{employee.FieldName, employee.FieldEmail, employee.FieldPhoneNo}
	}
	return employee.Fields
}

// Open shows the dialog. A nil rec opens it for creation with empty fields;
// otherwise it edits rec with the password left blank. Any previous edits,
// errors and in-flight mutation are discarded.
func (d *Dialog) Open(rec *employee.Record) {
	d.abandon()

	if rec != nil {
		cp := *rec
		d.record = &cp
		d.mode = employee.ModeEdit
		d.values = employee.FormFromRecord(cp)
		d.state = Edit
	} else {
		d.record = nil
		d.mode = employee.ModeCreate
		d.values = employee.EmptyForm()
		d.state = Create
	}
	d.fieldErrors = nil
	d.submitErr = nil
	d.passwordVisible = false
}

// Cancel closes the dialog without validating. Edits are dropped and any
// in-flight mutation is cancelled.
func (d *Dialog) Cancel() {
	d.abandon()
	d.state = Closed
	d.fieldErrors = nil
	d.submitErr = nil
	d.passwordVisible = false
}

func (d *Dialog) abandon() {
	d.gen++
	if d.inflight != nil {
		d.inflight.cancel()
		d.inflight = nil
	}
}

// Field returns the current value of f.
func (d *Dialog) Field(f employee.Field) string { return d.values.Get(f) }

// Values returns a copy of the current form values.
func (d *Dialog) Values() employee.FormState { return d.values }

// SetField updates f. It is ignored while the dialog is closed or
// submitting, and clears any error previously shown for f.
func (d *Dialog) SetField(f employee.Field, value string) {
	if d.state != Create && d.state != Edit {
		return
	}
	if f == employee.FieldPassword && d.mode == employee.ModeEdit {
		return
	}
	d.values.Set(f, value)
	delete(d.fieldErrors, f)
}

// FieldError returns the validation message for f, if any.
func (d *Dialog) FieldError(f employee.Field) string { return d.fieldErrors[f] }

// FieldErrors returns a copy of all current field messages.
func (d *Dialog) FieldErrors() map[employee.Field]string {
	if len(d.fieldErrors) == 0 {
		return nil
	}
	out := make(map[employee.Field]string, len(d.fieldErrors))
	for f, msg := range d.fieldErrors {
		out[f] = msg
	}
	return out
}

// SubmitError returns the error from the last failed mutation.
func (d *Dialog) SubmitError() error { return d.submitErr }

// TogglePasswordVisible flips whether the password input is masked.
func (d *Dialog) TogglePasswordVisible() { d.passwordVisible = !d.passwordVisible }

// PasswordVisible reports whether the password is shown in clear text.
func (d *Dialog) PasswordVisible() bool { return d.passwordVisible }

// Submit validates the form and, when valid, moves to Submitting and returns
// the mutation to run. It returns (nil, false) when the dialog is closed,
// already submitting, or the form is invalid; field errors are set in the
// last case and nothing is sent.
func (d *Dialog) Submit(ctx context.Context) (*Mutation, bool) {
	if d.state != Create && d.state != Edit {
		return nil, false
	}

	res := employee.Validate(d.values, d.mode)
	if !res.Valid {
		d.fieldErrors = res.FieldErrors
		return nil, false
	}

	if ctx == nil {
		ctx = context.Background()
	}
	mctx, cancel := context.WithCancel(ctx)
	m := &Mutation{Mode: d.mode, ctx: mctx, cancel: cancel, gen: d.gen}
	if d.mode == employee.ModeEdit {
		m.Update = employee.UpdatePayloadFrom(d.record.ID, d.values)
	} else {
		m.Create = employee.CreatePayloadFrom(d.values)
	}

	d.fieldErrors = nil
	d.submitErr = nil
	d.inflight = m
	d.state = Submitting
	return m, true
}

// Resolve reports the outcome of m and whether it was accepted. Results for
// mutations from an earlier open are ignored and return false. On success
// the dialog closes; a successful create also clears the fields. On failure
// the dialog returns to its edit state with the entered values intact and
// the error recorded.
func (d *Dialog) Resolve(m *Mutation, err error) bool {
	if m == nil || m != d.inflight || m.gen != d.gen || d.state != Submitting {
		return false
	}
	m.cancel()
	d.inflight = nil

	if err == nil {
		if m.Mode == employee.ModeCreate {
			d.values = employee.EmptyForm()
		}
		d.gen++
		d.state = Closed
		d.passwordVisible = false
		return true
	}

	d.submitErr = err
	if fields := employee.FieldErrors(err); len(fields) > 0 {
		d.fieldErrors = make(map[employee.Field]string, len(fields))
		for f, msg := range fields {
			d.fieldErrors[f] = msg
		}
	}
	if m.Mode == employee.ModeEdit {
		d.state = Edit
	} else {
		d.state = Create
	}
	return true
}

// Run sends m to api under the mutation's context.
func Run(api employee.Mutator, m *Mutation) (*employee.Record, error) {
	if m.Mode == employee.ModeEdit {
		return api.Update(m.ctx, m.Update)
	}
	return api.Create(m.ctx, m.Create)
}

// SubmitAndWait validates, runs and resolves in one call. It returns the
// validation error when the form is invalid, or the API error on failure.
func (d *Dialog) SubmitAndWait(ctx context.Context, api employee.Mutator) (*employee.Record, error) {
	if d.state != Create && d.state != Edit {
		return nil, ErrNotOpen
	}
	m, ok := d.Submit(ctx)
	if !ok {
		return nil, &employee.ValidationError{Message: "invalid employee form", Fields: d.FieldErrors()}
	}
	rec, err := Run(api, m)
	d.Resolve(m, err)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
