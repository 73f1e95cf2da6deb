package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/julianstephens/petspa/internal/models"
)

var ErrNotFound = errors.New("appointment not found")

// Provider persists appointments for the development service.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Close() error

	Create(ctx context.Context, a models.Appointment) (models.Appointment, error)
	Get(ctx context.Context, id int64) (models.Appointment, error)
	// ListByDate returns a day's appointments ordered by time, then id.
	ListByDate(ctx context.Context, date string) ([]models.Appointment, error)
	// SearchByOwner matches owner names containing query, case-insensitively.
	SearchByOwner(ctx context.Context, query string) ([]models.Appointment, error)
	Update(ctx context.Context, id int64, u models.AppointmentUpdate) (models.Appointment, error)
	Delete(ctx context.Context, id int64) error

	// Utils
	Describe() string
}

// Timestamp is the format used for createdAt and updatedAt.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// LikePattern builds a %query% pattern for LIKE ... ESCAPE '\'.
func LikePattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(query) + "%"
}

// IsPostgres reports whether dsn is a postgres connection string rather than
// a sqlite file path.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=") || strings.Contains(dsn, "dbname=")
}
