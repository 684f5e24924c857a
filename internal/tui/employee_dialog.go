package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"nathanbeddoewebdev/staffdesk/internal/employee"
	"nathanbeddoewebdev/staffdesk/internal/employee/form"
	"nathanbeddoewebdev/staffdesk/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const dialogWidth = 56

// employeeMutationResultMsg carries the outcome of a dialog submission back
// into the update loop.
type employeeMutationResultMsg struct {
	mutation *form.Mutation
	record   *employee.Record
	err      error
}

// employeeDialogModel renders a form.Dialog and translates key presses into
// state machine calls. Focus cycles through the inputs, then Save, then
// Cancel.
type employeeDialogModel struct {
	form    *form.Dialog
	fields  []employee.Field
	inputs  []textinput.Model
	focus   int
	spinner spinner.Model
	styles  *styles.Styles
}

func newEmployeeDialogModel(st *styles.Styles) employeeDialogModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(st.Palette.Accent)

	return employeeDialogModel{
		form:    form.New(),
		spinner: s,
		styles:  st,
	}
}

func (m employeeDialogModel) isOpen() bool { return m.form.IsOpen() }

// open resets the dialog for rec (nil creates) and focuses the first input.
func (m employeeDialogModel) open(rec *employee.Record) (employeeDialogModel, tea.Cmd) {
	m.form.Open(rec)
	m.fields = m.form.Fields()
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		m.inputs[i] = newDialogInput(f, m.form.Field(f))
	}
	m.focus = 0
	m.syncFocus()
	return m, textinput.Blink
}

func newDialogInput(f employee.Field, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 120
	ti.Width = dialogWidth - 8
	switch f {
	case employee.FieldName:
		ti.Placeholder = "Jane Doe"
	case employee.FieldEmail:
		ti.Placeholder = "jane@example.com"
	case employee.FieldPhoneNo:
		ti.Placeholder = "+1 555 123 4567"
	case employee.FieldPassword:
		ti.Placeholder = "at least 6 characters"
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.SetValue(value)
	return ti
}

func (m *employeeDialogModel) setStyles(st *styles.Styles) {
	m.styles = st
	m.spinner.Style = lipgloss.NewStyle().Foreground(st.Palette.Accent)
}

// saveIndex and cancelIndex are the focus positions after the inputs.
func (m employeeDialogModel) saveIndex() int   { return len(m.inputs) }
func (m employeeDialogModel) cancelIndex() int { return len(m.inputs) + 1 }

func (m *employeeDialogModel) syncFocus() {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *employeeDialogModel) moveFocus(delta int) {
	n := len(m.inputs) + 2
	m.focus = (m.focus + delta + n) % n
	m.syncFocus()
}

// update handles a message while the dialog is open. ctx is the parent
// context for any mutation started here.
func (m employeeDialogModel) update(ctx context.Context, api employee.Mutator, msg tea.Msg) (employeeDialogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.form.Pending() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		// Controls are disabled while a mutation is in flight.
		if m.form.Pending() {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.form.Cancel()
			return m, nil
		case "ctrl+r":
			m.form.TogglePasswordVisible()
			m.applyPasswordEcho()
			return m, nil
		case "tab", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		case "ctrl+s":
			return m.submit(ctx, api)
		case "enter":
			switch {
			case m.focus == m.cancelIndex():
				m.form.Cancel()
				return m, nil
			case m.focus >= len(m.inputs)-1:
				return m.submit(ctx, api)
			default:
				m.moveFocus(1)
				return m, nil
			}
		}

		if m.focus < len(m.inputs) {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			m.form.SetField(m.fields[m.focus], m.inputs[m.focus].Value())
			return m, cmd
		}
	}

	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *employeeDialogModel) applyPasswordEcho() {
	for i, f := range m.fields {
		if f != employee.FieldPassword {
			continue
		}
		if m.form.PasswordVisible() {
			m.inputs[i].EchoMode = textinput.EchoNormal
		} else {
			m.inputs[i].EchoMode = textinput.EchoPassword
		}
	}
}

func (m employeeDialogModel) submit(ctx context.Context, api employee.Mutator) (employeeDialogModel, tea.Cmd) {
	mutation, ok := m.form.Submit(ctx)
	if !ok {
		m.focusFirstError()
		return m, nil
	}
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m, tea.Batch(m.spinner.Tick, runEmployeeMutation(api, mutation))
}

func runEmployeeMutation(api employee.Mutator, mutation *form.Mutation) tea.Cmd {
	return func() tea.Msg {
		rec, err := form.Run(api, mutation)
		return employeeMutationResultMsg{mutation: mutation, record: rec, err: err}
	}
}

// resolve feeds a mutation result into the state machine and reports
// whether it was accepted. Stale results are ignored by the form.
func (m employeeDialogModel) resolve(msg employeeMutationResultMsg) (employeeDialogModel, bool) {
	if !m.form.Resolve(msg.mutation, msg.err) {
		return m, false
	}
	if m.form.IsOpen() {
		m.focusFirstError()
	}
	return m, true
}

func (m *employeeDialogModel) focusFirstError() {
	for i, f := range m.fields {
		if m.form.FieldError(f) != "" {
			m.focus = i
			m.syncFocus()
			return
		}
	}
	if m.focus >= len(m.inputs) {
		m.focus = 0
	}
	m.syncFocus()
}

func (m employeeDialogModel) view() string {
	if !m.form.IsOpen() {
		return ""
	}
	st := m.styles
	pending := m.form.Pending()

	var b strings.Builder
	title := st.Title.Render(m.form.Title())
	closeHint := st.MutedText.Render("esc ✕")
	gap := max(dialogWidth-6-lipgloss.Width(title)-lipgloss.Width(closeHint), 1)
	b.WriteString(title + strings.Repeat(" ", gap) + closeHint + "\n\n")

	for i, f := range m.fields {
		label := f.Label()
		if f == employee.FieldPassword {
			if m.form.PasswordVisible() {
				label += st.MutedText.Render("  (ctrl+r hide)")
			} else {
				label += st.MutedText.Render("  (ctrl+r show)")
			}
		}
		b.WriteString(st.Label.Render(label) + "\n")

		box := st.InputBlurred
		if i == m.focus && !pending {
			box = st.InputFocused
		}
		if m.form.FieldError(f) != "" {
			box = box.BorderForeground(st.Palette.Error)
		}
		b.WriteString(box.Width(dialogWidth-6).Render(m.inputs[i].View()) + "\n")

		if msg := m.form.FieldError(f); msg != "" {
			b.WriteString(st.ErrorText.Render(msg) + "\n")
		}
	}

	if err := m.form.SubmitError(); err != nil {
		hidden := m.hiddenFieldErrors()
		if len(hidden) > 0 || !m.showsFieldError() {
			b.WriteString("\n" + st.ErrorText.Render(mutationErrorText(err)) + "\n")
			for _, line := range hidden {
				b.WriteString(st.ErrorText.Render(line) + "\n")
			}
		}
	}

	b.WriteString("\n" + m.renderButtons())

	return st.Dialog.Width(dialogWidth).Render(b.String())
}

// showsFieldError reports whether any input carries an inline error.
func (m employeeDialogModel) showsFieldError() bool {
	for _, f := range m.fields {
		if m.form.FieldError(f) != "" {
			return true
		}
	}
	return false
}

// hiddenFieldErrors formats server field errors that have no input in the
// current mode, sorted by key.
func (m employeeDialogModel) hiddenFieldErrors() []string {
	errs := m.form.FieldErrors()
	for _, f := range m.fields {
		delete(errs, f)
	}
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, 0, len(errs))
	for f, msg := range errs {
		lines = append(lines, fmt.Sprintf("%s: %s", f.Label(), msg))
	}
	sort.Strings(lines)
	return lines
}

func (m employeeDialogModel) renderButtons() string {
	st := m.styles
	if m.form.Pending() {
		save := st.ButtonDisabled.Render(m.spinner.View() + " " + m.form.SubmitLabel())
		cancel := st.ButtonDisabled.Render("Cancel")
		return lipgloss.JoinHorizontal(lipgloss.Top, cancel, " ", save)
	}

	cancel := st.Button.Render("Cancel")
	if m.focus == m.cancelIndex() {
		cancel = st.ButtonPrimary.Render("Cancel")
	}
	save := st.Button.Render(m.form.SubmitLabel())
	if m.focus == m.saveIndex() {
		save = st.ButtonPrimary.Render(m.form.SubmitLabel())
	} else {
		save = st.AccentText.Render("[") + save + st.AccentText.Render("]")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cancel, " ", save)
}
