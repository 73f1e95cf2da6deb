package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/petspa/internal/logger"
	"github.com/julianstephens/petspa/internal/migration"
	"github.com/julianstephens/petspa/internal/models"
	"github.com/julianstephens/petspa/internal/storage"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Store struct {
	path string
	db   *sql.DB
	now  func() time.Time
}

var _ storage.Provider = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{
		path: path,
		now:  time.Now,
	}
}

// Init opens (creating if needed) the database file and applies migrations.
func (s *Store) Init(ctx context.Context) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows one writer; serialize rather than surface SQLITE_BUSY.
	db.SetMaxOpenConns(1)
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

func (s *Store) Describe() string {
	return "sqlite:" + s.path
}

func (s *Store) runMigrations(ctx context.Context) error {
	subFS, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	runner := migration.NewRunner(s.db, subFS, migration.SQLite)
	_, err = runner.Apply(ctx, func(msg string) {
		logger.Info(msg, "store", "sqlite")
	})
	return err
}

func (s *Store) Create(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	ts := storage.Timestamp(s.now())
	if a.Status == "" {
		a.Status = models.StatusPending
	}

	res, err := s.db.ExecContext(ctx, `
INSERT INTO appointments (pet_name, owner_name, service, date, time, notes, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.PetName, a.OwnerName, a.Service, a.Date, a.Time, a.Notes, string(a.Status), ts, ts)
	if err != nil {
		return models.Appointment{}, fmt.Errorf("failed to insert appointment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Appointment{}, err
	}
	return s.Get(ctx, id)
}

func (s *Store) Get(ctx context.Context, id int64) (models.Appointment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+storage.Columns+" FROM appointments WHERE id = ?", id)
	return storage.ScanAppointment(row)
}

func (s *Store) ListByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+storage.Columns+" FROM appointments WHERE date = ? ORDER BY time, id", date)
	if err != nil {
		return nil, err
	}
	return storage.ScanAll(rows)
}

func (s *Store) SearchByOwner(ctx context.Context, query string) ([]models.Appointment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+storage.Columns+` FROM appointments WHERE LOWER(owner_name) LIKE LOWER(?) ESCAPE '\' ORDER BY date, time, id`,
		storage.LikePattern(query))
	if err != nil {
		return nil, err
	}
	return storage.ScanAll(rows)
}

// Update merges u into the stored row inside a transaction.
func (s *Store) Update(ctx context.Context, id int64, u models.AppointmentUpdate) (models.Appointment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Appointment{}, err
	}
	defer func() { _ = tx.Rollback() }()

	a, err := storage.ScanAppointment(tx.QueryRowContext(ctx, "SELECT "+storage.Columns+" FROM appointments WHERE id = ?", id))
	if err != nil {
		return models.Appointment{}, err
	}
	u.Apply(&a)
	a.UpdatedAt = storage.Timestamp(s.now())

	_, err = tx.ExecContext(ctx, `
UPDATE appointments
SET pet_name = ?, owner_name = ?, service = ?, date = ?, time = ?, notes = ?, status = ?, updated_at = ?
WHERE id = ?`,
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
	res, err := s.db.ExecContext(ctx, "DELETE FROM appointments WHERE id = ?", id)
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
