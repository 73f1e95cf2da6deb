package models

import (
	"fmt"
	"strings"
)

// Appointment is a grooming appointment as exchanged with the appointment service.
type Appointment struct {
	ID        *int64 `json:"id,omitempty"`
	PetName   string `json:"petName"`
	OwnerName string `json:"ownerName"`
	Service   string `json:"service"`
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:mm
	Notes     string `json:"notes,omitempty"`
	Status    Status `json:"status"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// NewAppointment builds a create payload. Status is always pending and the
// id and timestamps are left for the server to assign.
func NewAppointment(petName, ownerName, service, date, tm, notes string) Appointment {
	return Appointment{
		PetName:   petName,
		OwnerName: ownerName,
		Service:   service,
		Date:      date,
		Time:      tm,
		Notes:     notes,
		Status:    StatusPending,
	}
}

// Persisted reports whether the server has assigned an id.
func (a Appointment) Persisted() bool {
	return a.ID != nil
}

// IDValue returns the id or 0 when the appointment has not been persisted.
func (a Appointment) IDValue() int64 {
	if a.ID == nil {
		return 0
	}
	return *a.ID
}

func (a Appointment) String() string {
	id := "new"
	if a.ID != nil {
		id = fmt.Sprintf("#%d", *a.ID)
	}
	return fmt.Sprintf("%s %s %s %s (%s) %s", id, a.Date, a.Time, a.PetName, a.OwnerName, a.Service)
}

// Validate checks the fields the service requires on create.
func (a Appointment) Validate() error {
	if strings.TrimSpace(a.PetName) == "" {
		return fmt.Errorf("pet name is required")
	}
	if strings.TrimSpace(a.OwnerName) == "" {
		return fmt.Errorf("owner name is required")
	}
	if strings.TrimSpace(a.Service) == "" {
		return fmt.Errorf("service is required")
	}
	if a.Date == "" {
		return fmt.Errorf("date is required")
	}
	if a.Time == "" {
		return fmt.Errorf("time is required")
	}
	if a.Status != "" && !a.Status.Valid() {
		return fmt.Errorf("invalid status %q", a.Status)
	}
	return nil
}

// AppointmentUpdate is a partial update. Nil fields are omitted from the
// request body and left unchanged by the server.
type AppointmentUpdate struct {
	PetName   *string `json:"petName,omitempty"`
	OwnerName *string `json:"ownerName,omitempty"`
	Service   *string `json:"service,omitempty"`
	Date      *string `json:"date,omitempty"`
	Time      *string `json:"time,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Status    *Status `json:"status,omitempty"`
}

// StatusUpdate builds a status-only update.
func StatusUpdate(s Status) AppointmentUpdate {
	return AppointmentUpdate{Status: &s}
}

// Empty reports whether the update carries no fields.
func (u AppointmentUpdate) Empty() bool {
	return u.PetName == nil && u.OwnerName == nil && u.Service == nil &&
		u.Date == nil && u.Time == nil && u.Notes == nil && u.Status == nil
}

// Apply merges the non-nil fields of u into a.
func (u AppointmentUpdate) Apply(a *Appointment) {
	if u.PetName != nil {
		a.PetName = *u.PetName
	}
	if u.OwnerName != nil {
		a.OwnerName = *u.OwnerName
	}
	if u.Service != nil {
		a.Service = *u.Service
	}
	if u.Date != nil {
		a.Date = *u.Date
	}
	if u.Time != nil {
		a.Time = *u.Time
	}
	if u.Notes != nil {
		a.Notes = *u.Notes
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
}
