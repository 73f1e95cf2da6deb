package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/petspa/internal/constants"
	"github.com/julianstephens/petspa/internal/logger"
	"github.com/julianstephens/petspa/internal/migration"
	"github.com/julianstephens/petspa/internal/models"
	"github.com/julianstephens/petspa/internal/storage"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")

type Store struct {
	connStr string
	db      *sql.DB
	now     func() time.Time
}

var _ storage.Provider = (*Store)(nil)

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
		now:     time.Now,
	}
	s.ensureSearchPath()
	return s
}

// ensureSearchPath points unqualified table names at the petspa schema
// unless the connection string already chooses a search_path.
func (s *Store) ensureSearchPath() {
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
		return
	}
	if !hasParam(s.connStr, "search_path") {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
	}
}

// hasParam reports whether a DSN-style (key=value ...) connection string
// sets key, case-insensitively.
func hasParam(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// ValidateConnString checks that connStr parses as a URI or DSN.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	return nil
}

func (s *Store) Init(ctx context.Context) error {
	if err := ValidateConnString(s.connStr); err != nil {
		return err
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasParam(s.connStr, "sslmode") && !strings.Contains(s.connStr, "sslmode=") {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+pq.QuoteIdentifier(constants.AppName)); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	if err := s.runMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Describe names the store without leaking credentials.
func (s *Store) Describe() string {
	if u, err := url.Parse(s.connStr); err == nil && u.Host != "" {
		return "postgres://" + u.Host + u.Path
	}
	return "postgres"
}

func (s *Store) runMigrations(ctx context.Context) error {
	subFS, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	runner := migration.NewRunner(s.db, subFS, migration.Postgres)
	_, err = runner.Apply(ctx, func(msg string) {
		logger.Info(msg, "store", "postgres")
	})
	return err
}

func (s *Store) Create(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	ts := storage.Timestamp(s.now())
	if a.Status == "" {
		a.Status = models.StatusPending
	}

	row := s.db.QueryRowContext(ctx, `
INSERT INTO appointments (pet_name, owner_name, service, date, time, notes, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+storage.Columns,
		a.PetName, a.OwnerName, a.Service, a.Date, a.Time, a.Notes, string(a.Status), ts, ts)
	created, err := storage.ScanAppointment(row)
	if err != nil {
		return models.Appointment{}, fmt.Errorf("failed to insert appointment: %w", err)
	}
	return created, nil
}

func (s *Store) Get(ctx context.Context, id int64) (models.Appointment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+storage.Columns+" FROM appointments WHERE id = $1", id)
	return storage.ScanAppointment(row)
}

func (s *Store) ListByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+storage.Columns+" FROM appointments WHERE date = $1 ORDER BY time, id", date)
	if err != nil {
		return nil, err
	}
	return storage.ScanAll(rows)
}

func (s *Store) SearchByOwner(ctx context.Context, query string) ([]models.Appointment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+storage.Columns+` FROM appointments WHERE owner_name ILIKE $1 ESCAPE '\' ORDER BY date, time, id`,
		storage.LikePattern(query))
	if err != nil {
		return nil, err
	}
	return storage.ScanAll(rows)
}

func (s *Store) Update(ctx context.Context, id int64, u models.AppointmentUpdate) (models.Appointment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Appointment{}, err
	}
	defer func() { _ = tx.Rollback() }()

	a, err := storage.ScanAppointment(tx.QueryRowContext(ctx,
		"SELECT "+storage.Columns+" FROM appointments WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		return models.Appointment{}, err
	}
	u.Apply(&a)
	a.UpdatedAt = storage.Timestamp(s.now())

	_, err = tx.ExecContext(ctx, `
UPDATE appointments
SET pet_name = $1, owner_name = $2, service = $3, date = $4, time = $5, notes = $6, status = $7, updated_at = $8
WHERE id = $9`,
		a.PetName, a.OwnerName, a.Service, a.Date, a.Time, a.Notes, string(a.Status), a.UpdatedAt, id)
	if err != nil {
		return models.Appointment{}, fmt.Errorf("failed to update appointment %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return models.Appointment{}, err
	}
	return a, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM appointments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
