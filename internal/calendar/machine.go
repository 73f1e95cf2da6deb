package calendar

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/petspa/internal/appointments"
	"github.com/julianstephens/petspa/internal/logger"
	"github.com/julianstephens/petspa/internal/models"
	"github.com/julianstephens/petspa/internal/notify"
)

var (
	// ErrBusy is returned when a mutation is attempted while another is
	// still in flight.
	ErrBusy = errors.New("another request is in progress")
	// ErrNoDialog is returned by form and delete operations when nothing is open.
	ErrNoDialog = errors.New("no dialog is open")
	// ErrUnknownAppointment is returned when an id is not among the loaded appointments.
	ErrUnknownAppointment = errors.New("appointment is not loaded")
)

// AppointmentStore is the repository the machine drives.
type AppointmentStore interface {
	GetByDate(ctx context.Context, date string) ([]models.Appointment, error)
	Create(ctx context.Context, a models.Appointment) (models.Appointment, error)
	Update(ctx context.Context, id int64, u models.AppointmentUpdate) (models.Appointment, error)
	Delete(ctx context.Context, id int64) error
	SearchByOwner(ctx context.Context, ownerName string) ([]models.Appointment, error)
}

// Notifier receives operation outcomes. *notify.Queue satisfies it.
type Notifier interface {
	Show(sev notify.Severity, title, message string, duration time.Duration) string
}

// State is a point-in-time copy of the machine.
type State struct {
	Date          time.Time
	Appointments  []models.Appointment
	Mode          Mode
	Form          Form
	EditingID     int64
	PendingDelete int64 // 0 when no delete awaits confirmation
	Loading       bool
	Busy          bool
	SearchQuery   string
	SearchResults []models.Appointment
}

// DateString is the selected date in wire format.
func (s State) DateString() string {
	return appointments.FormatDateForAPI(s.Date)
}

// Machine owns the selected date, the loaded appointments for that date, the
// open dialog and the loading state. Every repository call goes through it.
// It is safe for concurrent use.
type Machine struct {
	store    AppointmentStore
	notifier Notifier
	msgs     Messages
	now      func() time.Time

	mu            sync.Mutex
	date          time.Time
	appointments  []models.Appointment
	mode          Mode
	form          Form
	editingID     int64
	pendingDelete int64
	inFlight      int
	mutating      bool
	fetchSeq      uint64
	fetchCancel   context.CancelFunc
	searchQuery   string
	searchResults []models.Appointment
	searchSeq     uint64
}

type Option func(*Machine)

func WithMessages(msgs Messages) Option {
	return func(m *Machine) {
		m.msgs = msgs
	}
}

// WithClock sets the source of "now" used for the initial date and form defaults.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

func New(store AppointmentStore, notifier Notifier, opts ...Option) *Machine {
	m := &Machine{
		store:    store,
		notifier: notifier,
		msgs:     English,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.date = appointments.Today(m.now())
	return m
}

func (m *Machine) Messages() Messages {
	return m.msgs
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return State{
		Date:          m.date,
		Appointments:  append([]models.Appointment(nil), m.appointments...),
		Mode:          m.mode,
		Form:          m.form,
		EditingID:     m.editingID,
		PendingDelete: m.pendingDelete,
		Loading:       m.inFlight > 0,
		Busy:          m.mutating,
		SearchQuery:   m.searchQuery,
		SearchResults: append([]models.Appointment(nil), m.searchResults...),
	}
}

// SelectDate switches to the local day of d and loads its appointments.
func (m *Machine) SelectDate(ctx context.Context, d time.Time) error {
	m.mu.Lock()
	m.date = appointments.Today(d)
	m.mu.Unlock()
	return m.Refresh(ctx)
}

// Refresh reloads the selected date. A newer fetch supersedes and cancels
// any fetch still in flight; a superseded response is discarded.
func (m *Machine) Refresh(ctx context.Context) error {
	m.mu.Lock()
	m.fetchSeq++
	seq := m.fetchSeq
	if m.fetchCancel != nil {
		m.fetchCancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	m.fetchCancel = cancel
	date := appointments.FormatDateForAPI(m.date)
	m.inFlight++
	m.mu.Unlock()

	defer cancel()
	defer m.done()

	list, err := m.store.GetByDate(fctx, date)

	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.fetchSeq {
		logger.Debug("discarding superseded fetch", "date", date, "seq", seq)
		return nil
	}
	m.fetchCancel = nil
	if err != nil {
		logger.Warn("failed to load appointments", "date", date, "error", err)
		m.notifier.Show(notify.Error, m.msgs.LoadErrorTitle, m.msgs.LoadErrorMessage, -1)
		return err
	}
	m.appointments = list
	return nil
}

// OpenCreate opens a blank create dialog with date and time set to now.
func (m *Machine) OpenCreate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.mode = ModeCreate
	m.editingID = 0
	m.form = Form{Date: appointments.Today(now), Time: now}
}

// OpenEdit opens the edit dialog pre-populated from a loaded appointment.
func (m *Machine) OpenEdit(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.findLocked(id)
	if !ok {
		return ErrUnknownAppointment
	}
	m.mode = ModeEdit
	m.editingID = id
	m.form = FormFromAppointment(a)
	return nil
}

// SetForm replaces the draft of the open dialog.
func (m *Machine) SetForm(f Form) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode == ModeClosed {
		return ErrNoDialog
	}
	m.form = f
	return nil
}

// Cancel discards the draft and closes the dialog.
func (m *Machine) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

// Submit validates the draft and creates or updates the appointment. On a
// validation failure one warning is emitted and nothing is sent. On a
// transport failure the dialog stays open with the draft intact.
func (m *Machine) Submit(ctx context.Context) error {
	m.mu.Lock()
	if m.mode == ModeClosed {
		m.mu.Unlock()
		return ErrNoDialog
	}
	if verr := m.form.Validate(m.msgs); verr != nil {
		m.mu.Unlock()
		m.notifier.Show(notify.Warning, m.msgs.RequiredTitle, verr.Message, -1)
		return verr
	}
	if !m.beginMutationLocked() {
		m.mu.Unlock()
		return ErrBusy
	}
	mode, id, form := m.mode, m.editingID, m.form
	m.mu.Unlock()
	defer m.endMutation()

	err := m.call(func() error {
		var err error
		if mode == ModeEdit {
			_, err = m.store.Update(ctx, id, form.Update())
		} else {
			_, err = m.store.Create(ctx, form.Appointment())
		}
		return err
	})

	if err != nil {
		logger.Warn("failed to save appointment", "mode", mode, "id", id, "error", err)
		m.notifier.Show(notify.Error, m.msgs.SaveErrorTitle, m.msgs.SaveErrorMessage, -1)
		return err
	}

	if mode == ModeEdit {
		m.notifier.Show(notify.Success, m.msgs.UpdatedTitle, m.msgs.UpdatedMessage, -1)
	} else {
		m.notifier.Show(notify.Success, m.msgs.CreatedTitle, m.msgs.CreatedMessage, -1)
	}

	m.mu.Lock()
	m.closeLocked()
	m.mu.Unlock()

	m.refreshAfterMutation(ctx)
	return nil
}

// RequestDelete marks a loaded appointment for deletion pending confirmation.
func (m *Machine) RequestDelete(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.findLocked(id); !ok {
		return ErrUnknownAppointment
	}
	m.pendingDelete = id
	return nil
}

func (m *Machine) CancelDelete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingDelete = 0
}

// ConfirmDelete deletes the appointment marked by RequestDelete. On failure
// the loaded list is left untouched.
func (m *Machine) ConfirmDelete(ctx context.Context) error {
	m.mu.Lock()
	id := m.pendingDelete
	if id == 0 {
		m.mu.Unlock()
		return ErrNoDialog
	}
	if !m.beginMutationLocked() {
		m.mu.Unlock()
		return ErrBusy
	}
	m.pendingDelete = 0
	m.mu.Unlock()
	defer m.endMutation()

	err := m.call(func() error {
		return m.store.Delete(ctx, id)
	})

	if err != nil {
		logger.Warn("failed to delete appointment", "id", id, "error", err)
		m.notifier.Show(notify.Error, m.msgs.DeleteErrorTitle, m.msgs.DeleteErrorMessage, -1)
		return err
	}
	m.notifier.Show(notify.Success, m.msgs.DeletedTitle, m.msgs.DeletedMessage, -1)
	m.refreshAfterMutation(ctx)
	return nil
}

// CycleStatus advances a loaded appointment to the next status in the cycle.
func (m *Machine) CycleStatus(ctx context.Context, id int64) error {
	m.mu.Lock()
	a, ok := m.findLocked(id)
	if !ok {
		m.mu.Unlock()
		return ErrUnknownAppointment
	}
	if !m.beginMutationLocked() {
		m.mu.Unlock()
		return ErrBusy
	}
	m.mu.Unlock()
	defer m.endMutation()

	next := a.Status.Next()
	err := m.call(func() error {
		_, err := m.store.Update(ctx, id, models.StatusUpdate(next))
		return err
	})

	if err != nil {
		logger.Warn("failed to update status", "id", id, "status", next, "error", err)
		m.notifier.Show(notify.Error, m.msgs.StatusErrorTitle, m.msgs.StatusErrorMessage, -1)
		return err
	}
	m.notifier.Show(notify.Success, m.msgs.StatusUpdatedTitle, m.msgs.StatusUpdatedMessage, -1)
	m.refreshAfterMutation(ctx)
	return nil
}

// Search loads appointments whose owner matches query. An empty query clears
// the results.
func (m *Machine) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)

	m.mu.Lock()
	m.searchSeq++
	seq := m.searchSeq
	m.searchQuery = query
	if query == "" {
		m.searchResults = nil
		m.mu.Unlock()
		return nil
	}
	m.inFlight++
	m.mu.Unlock()
	defer m.done()

	list, err := m.store.SearchByOwner(ctx, query)

	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.searchSeq {
		return nil
	}
	if err != nil {
		logger.Warn("owner search failed", "query", query, "error", err)
		m.notifier.Show(notify.Error, m.msgs.SearchErrorTitle, m.msgs.SearchErrorMessage, -1)
		return err
	}
	m.searchResults = list
	return nil
}

// refreshAfterMutation reloads the selected date and, when a search is
// active, its results. Failures are already reported by the reloads.
func (m *Machine) refreshAfterMutation(ctx context.Context) {
	_ = m.Refresh(ctx)

	m.mu.Lock()
	query := m.searchQuery
	m.mu.Unlock()
	if query != "" {
		_ = m.Search(ctx, query)
	}
}

func (m *Machine) beginMutationLocked() bool {
	if m.mutating {
		return false
	}
	m.mutating = true
	m.inFlight++
	return true
}

func (m *Machine) endMutation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutating = false
}

// call runs a mutation request begun by beginMutationLocked, releasing its
// loading slot however fn returns.
func (m *Machine) call(fn func() error) error {
	defer m.done()
	return fn()
}

func (m *Machine) done() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight > 0 {
		m.inFlight--
	}
}

func (m *Machine) closeLocked() {
	m.mode = ModeClosed
	m.editingID = 0
	m.form = Form{}
}

func (m *Machine) findLocked(id int64) (models.Appointment, bool) {
	for _, a := range m.appointments {
		if a.IDValue() == id {
			return a, true
		}
	}
	for _, a := range m.searchResults {
		if a.IDValue() == id {
			return a, true
		}
	}
	return models.Appointment{}, false
}
