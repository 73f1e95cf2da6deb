package appointments

import (
	"context"
	"fmt"
	"net/url"

	"github.com/julianstephens/petspa/internal/models"
)

// Transport is the subset of api.Client the repository needs.
type Transport interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// Repository maps appointment operations onto the service's HTTP paths.
// Transport errors are returned unchanged.
type Repository struct {
	t Transport
}

func NewRepository(t Transport) *Repository {
	return &Repository{t: t}
}

// Create posts a new appointment and returns it with its server-assigned id.
func (r *Repository) Create(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	a.ID = nil
	a.CreatedAt, a.UpdatedAt = "", ""

	var out models.Appointment
	if err := r.t.Post(ctx, "/appointments", a, &out); err != nil {
		return models.Appointment{}, err
	}
	return out, nil
}

// GetByDate lists a day's appointments in server order. date is YYYY-MM-DD.
func (r *Repository) GetByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	if err := r.t.Get(ctx, "/appointments/date/"+url.PathEscape(date), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Appointment{}
	}
	return out, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (models.Appointment, error) {
	var out models.Appointment
	if err := r.t.Get(ctx, fmt.Sprintf("/appointments/%d", id), &out); err != nil {
		return models.Appointment{}, err
	}
	return out, nil
}

// Update sends only the fields set on u.
func (r *Repository) Update(ctx context.Context, id int64, u models.AppointmentUpdate) (models.Appointment, error) {
	var out models.Appointment
	if err := r.t.Put(ctx, fmt.Sprintf("/appointments/%d", id), u, &out); err != nil {
		return models.Appointment{}, err
	}
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.t.Delete(ctx, fmt.Sprintf("/appointments/%d", id), nil)
}

// SearchByOwner finds appointments whose owner name matches ownerName.
func (r *Repository) SearchByOwner(ctx context.Context, ownerName string) ([]models.Appointment, error) {
	var out []models.Appointment
	if err := r.t.Get(ctx, "/appointments/search?ownerName="+url.QueryEscape(ownerName), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Appointment{}
	}
	return out, nil
}
