package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/petspa/internal/appointments"
	"github.com/julianstephens/petspa/internal/calendar"
	"github.com/julianstephens/petspa/internal/constants"
	"github.com/julianstephens/petspa/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.agenda.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case notificationsMsg:
		m.toasts = msg
		return m, waitForNotifications(m.notifications)

	case opDoneMsg:
		return m.handleOpDone(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			m.close()
			return m, tea.Quit
		}
	}

	switch m.state {
	case constants.StateEditing:
		return m.updateEditing(msg)
	case constants.StateGoToDate, constants.StateSearchPrompt:
		return m.updatePrompt(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m.updateAgenda(msg)
}

func (m Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if m.pending > 0 {
		m.pending--
	}
	if msg.err != nil {
		logger.Debug("calendar operation failed", "op", msg.op, "error", msg.err)
	}

	m.sync()

	switch msg.op {
	case "submit":
		// validation and transport failures leave the dialog open
		if m.snapshot.Mode != calendar.ModeClosed {
			m.openForm()
			return m, m.form.Init()
		}
	case "search":
		if m.snapshot.SearchQuery == "" {
			m.state = constants.StateAgenda
		} else {
			m.state = constants.StateSearch
		}
		m.sync()
	}
	return m, nil
}

func (m Model) updateAgenda(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.agenda, cmd = m.agenda.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		m.close()
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Dismiss):
		if n := len(m.toasts); n > 0 {
			m.queue.Remove(m.toasts[n-1].ID)
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.Clear):
		m.queue.Clear()
		return m, nil
	case key.Matches(keyMsg, m.keys.Back):
		if m.state == constants.StateSearch {
			return m.start("search", func(ctx context.Context) error {
				return m.machine.Search(ctx, "")
			})
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.Left):
		return m.selectDate(m.snapshot.Date.AddDate(0, 0, -1))
	case key.Matches(keyMsg, m.keys.Right):
		return m.selectDate(m.snapshot.Date.AddDate(0, 0, 1))
	case key.Matches(keyMsg, m.keys.Today):
		return m.selectDate(time.Now())
	case key.Matches(keyMsg, m.keys.Refresh):
		return m.start("refresh", m.machine.Refresh)
	case key.Matches(keyMsg, m.keys.GoTo):
		m.promptValue = m.snapshot.DateString()
		m.form = NewDateForm(&m.promptValue)
		m.state = constants.StateGoToDate
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.Search):
		m.promptValue = m.snapshot.SearchQuery
		m.form = NewSearchForm(&m.promptValue)
		m.state = constants.StateSearchPrompt
		return m, m.form.Init()
	}

	if m.isAction(keyMsg) {
		if m.Busy() {
			return m, nil
		}
		return m.handleAction(keyMsg)
	}

	var cmd tea.Cmd
	m.agenda, cmd = m.agenda.Update(msg)
	return m, cmd
}

func (m Model) isAction(msg tea.KeyMsg) bool {
	return key.Matches(msg, m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Status)
}

func (m Model) handleAction(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Add) {
		m.machine.OpenCreate()
		m.sync()
		m.openForm()
		return m, m.form.Init()
	}

	selected, ok := m.agenda.Selected()
	if !ok {
		return m, nil
	}
	id := selected.IDValue()

	switch {
	case key.Matches(msg, m.keys.Edit):
		if err := m.machine.OpenEdit(id); err != nil {
			logger.Debug("cannot edit appointment", "id", id, "error", err)
			return m, nil
		}
		m.sync()
		m.openForm()
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Delete):
		if err := m.machine.RequestDelete(id); err != nil {
			logger.Debug("cannot delete appointment", "id", id, "error", err)
			return m, nil
		}
		m.sync()
		m.state = constants.StateConfirmDelete
	case key.Matches(msg, m.keys.Status):
		return m.start("status", func(ctx context.Context) error {
			return m.machine.CycleStatus(ctx, id)
		})
	}
	return m, nil
}

func (m Model) selectDate(d time.Time) (tea.Model, tea.Cmd) {
	machine := m.machine
	return m.start("refresh", func(ctx context.Context) error {
		return machine.SelectDate(ctx, d)
	})
}

// openForm shows the appointment dialog for the machine's current draft.
func (m *Model) openForm() {
	title := "New appointment"
	if m.snapshot.Mode == calendar.ModeEdit {
		title = "Edit appointment"
	}
	m.apptForm = newAppointmentFormModel(m.snapshot.Form)
	m.form = NewAppointmentForm(title, m.apptForm, m.opts.Services)
	m.state = constants.StateEditing
}

// returnState is the list view to go back to after a dialog closes.
func (m Model) returnState() constants.SessionState {
	if m.snapshot.SearchQuery != "" {
		return constants.StateSearch
	}
	return constants.StateAgenda
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Back) {
		m.machine.Cancel()
		m.sync()
		m.state = m.returnState()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.machine.SetForm(m.apptForm.Form()); err != nil {
			logger.Debug("dialog closed before submit", "error", err)
			m.state = m.returnState()
			return m, nil
		}
		m.state = m.returnState()
		return m.start("submit", m.machine.Submit)
	case huh.StateAborted:
		m.machine.Cancel()
		m.sync()
		m.state = m.returnState()
		return m, nil
	}
	return m, cmd
}

func (m Model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Back) {
		m.state = m.returnState()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		value := strings.TrimSpace(m.promptValue)
		if m.state == constants.StateGoToDate {
			m.state = m.returnState()
			d, err := appointments.ParseAPIDate(value)
			if err != nil {
				return m, nil
			}
			return m.selectDate(d)
		}
		m.state = m.returnState()
		machine := m.machine
		return m.start("search", func(ctx context.Context) error {
			return machine.Search(ctx, value)
		})
	case huh.StateAborted:
		m.state = m.returnState()
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		m.state = m.returnState()
		return m.start("delete", func(ctx context.Context) error {
			err := m.machine.ConfirmDelete(ctx)
			if errors.Is(err, calendar.ErrNoDialog) {
				return nil
			}
			return err
		})
	case key.Matches(keyMsg, m.keys.Deny):
		m.machine.CancelDelete()
		m.sync()
		m.state = m.returnState()
	}
	return m, nil
}
