package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nathanbeddoewebdev/staffdesk/internal/auditlog"
	"nathanbeddoewebdev/staffdesk/internal/employee"
	"nathanbeddoewebdev/staffdesk/internal/shell"
	"nathanbeddoewebdev/staffdesk/internal/theme"
	"nathanbeddoewebdev/staffdesk/internal/toast"
	"nathanbeddoewebdev/staffdesk/internal/tui/components"
	"nathanbeddoewebdev/staffdesk/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	toastTickInterval = 500 * time.Millisecond
	activityDays      = 14
	activityLimit     = 500
)

// EmployeeService is what the employee app needs from the service layer.
type EmployeeService interface {
	employee.Mutator
	List(ctx context.Context) ([]employee.Record, error)
}

// ActivitySource provides recent audit entries for the activity chart.
type ActivitySource interface {
	List(limit int) ([]auditlog.Entry, error)
}

// --- Messages ---

type employeesLoadedMsg struct {
	records  []employee.Record
	activity []float64
}

type employeesErrorMsg struct {
	err error
}

type toastTickMsg time.Time

type themeChangedMsg struct {
	mode theme.Mode
}

// --- App model ---

// employeeAppModel lists employees and hosts the create/edit dialog as an
// overlay. Toasts are drawn over the top-right corner.
type employeeAppModel struct {
	shell    *shell.Shell
	service  EmployeeService
	activity ActivitySource
	ctx      context.Context
	now      func() time.Time

	styles *styles.Styles
	dialog employeeDialogModel

	records   []employee.Record
	counts    []float64
	cursor    int
	listStart int

	loading       bool
	spinner       spinner.Model
	err           error
	status        string
	statusIsError bool

	width  int
	height int
}

func newEmployeeAppModel(ctx context.Context, sh *shell.Shell, svc EmployeeService, activity ActivitySource) employeeAppModel {
	st := sh.Styles()
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(st.Palette.Accent)

	return employeeAppModel{
		shell:    sh,
		service:  svc,
		activity: activity,
		ctx:      ctx,
		now:      time.Now,
		styles:   st,
		dialog:   newEmployeeDialogModel(st),
		loading:  true,
		spinner:  s,
	}
}

// RunEmployeeApp starts the employee management TUI. It stays open until
// the user quits from the list. activity may be nil.
func RunEmployeeApp(ctx context.Context, sh *shell.Shell, svc EmployeeService, activity ActivitySource) error {
	ctx = auditlog.WithMetadata(ctx, auditlog.Metadata{Source: "tui"})
	m := newEmployeeAppModel(ctx, sh, svc, activity)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Mode changes can come from outside the update loop; Send must not be
	// called from inside it.
	unsubscribe := sh.Subscribe(func(mode theme.Mode) {
		go p.Send(themeChangedMsg{mode: mode})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run employee app: %w", err)
	}
	return nil
}

func (m employeeAppModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd(), toastTick())
}

func toastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg { return toastTickMsg(t) })
}

// loadCmd fetches the employee list and the audit activity concurrently.
func (m employeeAppModel) loadCmd() tea.Cmd {
	svc, activity, ctx, now := m.service, m.activity, m.ctx, m.now
	return func() tea.Msg {
		var msg employeesLoadedMsg
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			records, err := svc.List(gctx)
			if err != nil {
				return err
			}
			msg.records = records
			return nil
		})
		if activity != nil {
			g.Go(func() error {
				entries, err := activity.List(activityLimit)
				if err != nil {
					// The chart is decorative; a broken audit store
					// must not hide the list.
					return nil
				}
				msg.activity = activityCounts(entries, now(), activityDays)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return employeesErrorMsg{err: err}
		}
		return msg
	}
}

// activityCounts buckets successful mutations per local day, oldest first,
// ending today.
func activityCounts(entries []auditlog.Entry, now time.Time, days int) []float64 {
	if days <= 0 {
		return nil
	}
	counts := make([]float64, days)
	today := startOfDay(now)
	for _, e := range entries {
		if e.Outcome != auditlog.OutcomeSuccess {
			continue
		}
		age := int(today.Sub(startOfDay(e.Timestamp.In(now.Location()))).Hours() / 24)
		if age < 0 || age >= days {
			continue
		}
		counts[days-1-age]++
	}
	return counts
}

func startOfDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

func (m employeeAppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case employeesLoadedMsg:
		m.loading = false
		m.err = nil
		m.records = msg.records
		if msg.activity != nil {
			m.counts = msg.activity
		}
		if m.cursor >= len(m.records) {
			m.cursor = max(len(m.records)-1, 0)
		}
		if m.status == "" {
			m.status = fmt.Sprintf("Loaded %d employees.", len(m.records))
			m.statusIsError = false
		}
		return m, nil

	case employeesErrorMsg:
		m.loading = false
		m.err = msg.err
		m.status = msg.err.Error()
		m.statusIsError = true
		return m, nil

	case employeeMutationResultMsg:
		return m.handleMutationResult(msg)

	case toastTickMsg:
		m.shell.Toasts().Prune()
		return m, toastTick()

	case themeChangedMsg:
		m.applyTheme()
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.dialog.isOpen() {
			var cmd tea.Cmd
			m.dialog, cmd = m.dialog.update(m.ctx, m.service, msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.dialog.isOpen() {
			var cmd tea.Cmd
			m.dialog, cmd = m.dialog.update(m.ctx, m.service, msg)
			return m, cmd
		}
		return m.updateList(msg)
	}

	if m.dialog.isOpen() {
		var cmd tea.Cmd
		m.dialog, cmd = m.dialog.update(m.ctx, m.service, msg)
		return m, cmd
	}
	return m, nil
}

func (m employeeAppModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case "n", "c":
		m.status = ""
		var cmd tea.Cmd
		m.dialog, cmd = m.dialog.open(nil)
		return m, cmd
	case "e", "enter":
		if len(m.records) == 0 {
			return m, nil
		}
		rec := m.records[m.cursor]
		m.status = ""
		var cmd tea.Cmd
		m.dialog, cmd = m.dialog.open(&rec)
		return m, cmd
	case "r":
		m.loading = true
		m.err = nil
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())
	case "t":
		mode := m.shell.Toggle()
		m.applyTheme()
		m.shell.Logger().Debug("theme toggled from tui", zap.String("mode", mode.String()))
	}
	return m, nil
}

func (m *employeeAppModel) applyTheme() {
	m.styles = m.shell.Styles()
	m.spinner.Style = lipgloss.NewStyle().Foreground(m.styles.Palette.Accent)
	m.dialog.setStyles(m.styles)
}

func (m employeeAppModel) handleMutationResult(msg employeeMutationResultMsg) (tea.Model, tea.Cmd) {
	var accepted bool
	m.dialog, accepted = m.dialog.resolve(msg)
	if !accepted {
		return m, nil
	}

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		m.shell.Notify(mutationErrorText(msg.err), toast.Error)
		return m, nil
	}

	verb := "created"
	if msg.mutation.Mode == employee.ModeEdit {
		verb = "updated"
	}
	name := "Employee"
	if msg.record != nil && msg.record.Name != "" {
		name = fmt.Sprintf("Employee %q", msg.record.Name)
	}
	text := fmt.Sprintf("%s %s successfully", name, verb)
	m.shell.Notify(text, toast.Success)
	m.status = text
	m.statusIsError = false

	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.loadCmd())
}

func mutationErrorText(err error) string {
	var serr *employee.ServerError
	if errors.As(err, &serr) && serr.Message != "" {
		return serr.Message
	}
	var verr *employee.ValidationError
	if errors.As(err, &verr) && verr.Message != "" {
		return verr.Message
	}
	msg := err.Error()
	if msg == "" {
		return "Something went wrong"
	}
	return msg
}

func (m employeeAppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	st := m.styles

	header := components.Header(st, m.width, "employees", "● "+m.shell.Mode().String())

	bindings := []components.KeyBinding{
		{Key: "j/k", Desc: "nav"},
		{Key: "n", Desc: "new"},
		{Key: "e", Desc: "edit"},
		{Key: "r", Desc: "refresh"},
		{Key: "t", Desc: "theme"},
		{Key: "q", Desc: "quit"},
	}
	if m.dialog.isOpen() {
		bindings = []components.KeyBinding{
			{Key: "tab", Desc: "next"},
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
		if m.dialog.form.Mode() == employee.ModeCreate {
			bindings = append(bindings, components.KeyBinding{Key: "ctrl+r", Desc: "show password"})
		}
	}
	footer := components.Footer(st, m.width, bindings)
	statusBar := components.StatusBar(st, m.width, m.status, m.statusIsError)

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	statusH := lipgloss.Height(statusBar)
	contentH := max(m.height-headerH-footerH-statusH, 1)

	var content string
	switch {
	case m.loading && len(m.records) == 0:
		content = fmt.Sprintf("\n  %s Loading employees...", m.spinner.View())
	case m.err != nil && len(m.records) == 0:
		content = "\n  " + st.ErrorText.Render(m.err.Error()) + "\n\n  " + st.MutedText.Render("Press r to retry.")
	case len(m.records) == 0:
		content = "\n  No employees yet. Press n to add one."
	default:
		chart := ""
		if len(m.counts) > 0 {
			chart = lipgloss.NewStyle().Padding(0, 2).Render(
				components.ActivityChart(st, fmt.Sprintf("Last %d days", len(m.counts)), m.counts, m.width-4))
		}
		tableH := contentH - lipgloss.Height(chart) - 1
		content = lipgloss.JoinVertical(lipgloss.Left, m.renderTable(tableH), "", chart)
	}

	if lines := lipgloss.Height(content); lines < contentH {
		content += lipgloss.NewStyle().Height(contentH - lines).Render("")
	}

	view := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar, footer)

	if m.dialog.isOpen() {
		view = components.Overlay(view, m.dialog.view(), m.width, m.height, components.Center)
	}
	if panel := components.Toasts(st, m.shell.Toasts().Active(), m.width); panel != "" {
		view = components.Overlay(view, panel, m.width, m.height, components.TopRight)
	}

	return padToHeight(view, m.width, m.height)
}

// employeeColumns returns column widths for name, email and phone that fit
// the terminal width.
func employeeColumns(width int) [3]int {
	avail := max(width-4-12-4, 30) // cursor, role column, gaps
	name := avail * 30 / 100
	email := avail * 45 / 100
	phone := avail - name - email
	return [3]int{name, email, phone}
}

func (m employeeAppModel) renderTable(height int) string {
	st := m.styles
	cols := employeeColumns(m.width)

	header := st.TableHeader.Render(
		fmt.Sprintf("  %-*s %-*s %-*s %s",
			cols[0], "NAME",
			cols[1], "EMAIL",
			cols[2], "PHONE NO",
			"ROLE",
		),
	)

	rows := []string{header}
	height = max(height, 2)

	listStart := m.listStart
	if m.cursor < listStart {
		listStart = m.cursor
	} else if m.cursor >= listStart+(height-1) {
		listStart = m.cursor - (height - 2)
	}
	end := min(listStart+height-1, len(m.records))

	for i := listStart; i < end; i++ {
		r := m.records[i]

		cursor := " "
		rowStyle := st.TableCell
		if i == m.cursor {
			cursor = st.AccentText.Render(">")
			rowStyle = st.TableSelectedRow
		}

		row := fmt.Sprintf("%s %s %s %s %s",
			cursor,
			cell(r.Name, cols[0]),
			cell(r.Email, cols[1]),
			cell(r.PhoneNo, cols[2]),
			st.RoleIndicator(roleOrDefault(r.Role)),
		)
		rows = append(rows, rowStyle.Render(row))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// cell truncates s to width cells and pads it to exactly width.
func cell(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func roleOrDefault(role string) string {
	if role == "" {
		return employee.RoleEmployee
	}
	return role
}

// padToHeight ensures the view string has exactly height lines so the alt
// screen renderer repaints the full terminal.
func padToHeight(view string, width, height int) string {
	if height <= 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
