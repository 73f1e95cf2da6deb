package storage

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/petspa/internal/models"
)

// Columns is the select list matching ScanAppointment.
const Columns = "id, pet_name, owner_name, service, date, time, notes, status, created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

// ScanAppointment reads one row selected with Columns. sql.ErrNoRows is
// mapped to ErrNotFound.
func ScanAppointment(row scanner) (models.Appointment, error) {
	var a models.Appointment
	var id int64
	var status string
	err := row.Scan(&id, &a.PetName, &a.OwnerName, &a.Service, &a.Date, &a.Time, &a.Notes, &status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Appointment{}, ErrNotFound
	}
	if err != nil {
		return models.Appointment{}, err
	}
	a.ID = &id
	a.Status = models.Status(status)
	return a, nil
}

// ScanAll drains rows into a non-nil slice.
func ScanAll(rows *sql.Rows) ([]models.Appointment, error) {
	defer rows.Close()
	out := []models.Appointment{}
	for rows.Next() {
		a, err := ScanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
