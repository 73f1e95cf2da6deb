package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/petspa/internal/calendar"
	"github.com/julianstephens/petspa/internal/constants"
	"github.com/julianstephens/petspa/internal/models"
	"github.com/julianstephens/petspa/internal/notify"
	"github.com/julianstephens/petspa/internal/tui/components/agenda"
)

// Options configures the interactive calendar.
type Options struct {
	Services []string
	Labels   models.StatusLabeler
	// Summary titles the day header, e.g. "Resumen del día".
	Summary string
}

// opDoneMsg reports that a machine call started by the model returned.
type opDoneMsg struct {
	op  string
	err error
}

// notificationsMsg carries a queue snapshot.
type notificationsMsg []notify.Notification

type Model struct {
	ctx     context.Context
	machine *calendar.Machine
	queue   *notify.Queue
	opts    Options

	state    constants.SessionState
	keys     KeyMap
	help     help.Model
	agenda   agenda.Model
	spinner  spinner.Model
	snapshot calendar.State
	pending  int

	form        *huh.Form
	apptForm    *AppointmentFormModel
	promptValue string

	toasts        []notify.Notification
	notifications <-chan []notify.Notification
	unsubscribe   func()

	quitting bool
	width    int
	height   int
}

func NewModel(ctx context.Context, machine *calendar.Machine, queue *notify.Queue, opts Options) Model {
	if opts.Labels == nil {
		opts.Labels = models.EnglishLabels
	}
	if len(opts.Services) == 0 {
		opts.Services = constants.DefaultServices
	}
	if opts.Summary == "" {
		opts.Summary = "Day summary"
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	ch, unsubscribe := queue.Subscribe()

	m := Model{
		ctx:           ctx,
		machine:       machine,
		queue:         queue,
		opts:          opts,
		state:         constants.StateAgenda,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		agenda:        agenda.New(opts.Labels, 0, 0),
		spinner:       sp,
		notifications: ch,
		unsubscribe:   unsubscribe,
		// the initial load is started by Init
		pending: 1,
	}
	m.sync()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Deny}
	case constants.StateSearch:
		return []key.Binding{m.keys.Edit, m.keys.Delete, m.keys.Status, m.keys.Back, m.keys.Quit}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForNotifications(m.notifications),
		opCmd(m.ctx, "refresh", m.machine.Refresh),
	)
}

// Busy reports whether a request is outstanding. Action keys are ignored
// while busy.
func (m Model) Busy() bool {
	return m.pending > 0 || m.snapshot.Loading
}

// sync copies the machine state into the view.
func (m *Model) sync() {
	m.snapshot = m.machine.Snapshot()
	if m.state == constants.StateSearch {
		m.agenda.SetAppointments(m.snapshot.SearchResults)
		return
	}
	m.agenda.SetAppointments(m.snapshot.Appointments)
}

// start runs fn on the machine in a command and counts it as pending
// until its opDoneMsg arrives.
func (m Model) start(op string, fn func(context.Context) error) (tea.Model, tea.Cmd) {
	m.pending++
	return m, opCmd(m.ctx, op, fn)
}

func opCmd(ctx context.Context, op string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func waitForNotifications(ch <-chan []notify.Notification) tea.Cmd {
	return func() tea.Msg {
		items, ok := <-ch
		if !ok {
			return nil
		}
		return notificationsMsg(items)
	}
}

func (m *Model) close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}
