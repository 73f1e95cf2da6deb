package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/petspa/internal/appointments"
	"github.com/julianstephens/petspa/internal/models"
)

type Mode int

const (
	ModeClosed Mode = iota
	ModeCreate
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	}
	return "closed"
}

// Form is the draft edited in the create/edit dialog. A zero Date or Time
// means the field has not been filled in.
type Form struct {
	PetName   string
	OwnerName string
	Service   string
	Date      time.Time
	Time      time.Time
	Notes     string
}

// Field names a form field that failed validation.
type Field string

const (
	FieldPetName   Field = "petName"
	FieldOwnerName Field = "ownerName"
	FieldService   Field = "service"
	FieldDate      Field = "date"
	FieldTime      Field = "time"
)

var ErrValidation = errors.New("validation failed")

// ValidationError reports the first failing rule of a submit.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validate checks, in order: pet name, owner name, service, date, time. Only
// the first violation is reported.
func (f Form) Validate(msgs Messages) *ValidationError {
	switch {
	case strings.TrimSpace(f.PetName) == "":
		return &ValidationError{Field: FieldPetName, Message: msgs.PetNameRequired}
	case strings.TrimSpace(f.OwnerName) == "":
		return &ValidationError{Field: FieldOwnerName, Message: msgs.OwnerNameRequired}
	case f.Service == "":
		return &ValidationError{Field: FieldService, Message: msgs.ServiceRequired}
	case f.Date.IsZero():
		return &ValidationError{Field: FieldDate, Message: msgs.DateRequired}
	case f.Time.IsZero():
		return &ValidationError{Field: FieldTime, Message: msgs.TimeRequired}
	}
	return nil
}

// FormFromAppointment pre-populates an edit form. Unparseable date or time
// values leave the field empty.
func FormFromAppointment(a models.Appointment) Form {
	f := Form{
		PetName:   a.PetName,
		OwnerName: a.OwnerName,
		Service:   a.Service,
		Notes:     a.Notes,
	}
	if d, err := appointments.ParseAPIDate(a.Date); err == nil {
		f.Date = d
	}
	if t, err := appointments.ParseAPITime(a.Time); err == nil {
		f.Time = t
	}
	return f
}

// Appointment builds a create payload from the form. Status is always pending.
func (f Form) Appointment() models.Appointment {
	return models.NewAppointment(
		strings.TrimSpace(f.PetName),
		strings.TrimSpace(f.OwnerName),
		f.Service,
		appointments.FormatDateForAPI(f.Date),
		appointments.FormatTimeForAPI(f.Time),
		f.Notes,
	)
}

// Update builds an edit payload carrying every form field but not status.
func (f Form) Update() models.AppointmentUpdate {
	pet := strings.TrimSpace(f.PetName)
	owner := strings.TrimSpace(f.OwnerName)
	service := f.Service
	date := appointments.FormatDateForAPI(f.Date)
	tm := appointments.FormatTimeForAPI(f.Time)
	notes := f.Notes
	return models.AppointmentUpdate{
		PetName:   &pet,
		OwnerName: &owner,
		Service:   &service,
		Date:      &date,
		Time:      &tm,
		Notes:     &notes,
	}
}
