package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Dialect selects the bind placeholder style of the target database.
type Dialect int

const (
	SQLite   Dialect = iota // ?
	Postgres                // $1
)

func (d Dialect) placeholder() string {
	if d == Postgres {
		return "$1"
	}
	return "?"
}

// Migration is one NNN_name.sql file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Runner applies schema migrations read from an fs.FS.
type Runner struct {
	db      *sql.DB
	fs      fs.FS
	dialect Dialect
}

func NewRunner(db *sql.DB, migrationFS fs.FS, dialect Dialect) *Runner {
	return &Runner{
		db:      db,
		fs:      migrationFS,
		dialect: dialect,
	}
}

func (r *Runner) ensureVersionTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`)
	return err
}

// CurrentVersion returns the applied schema version, 0 for a fresh database.
func (r *Runner) CurrentVersion(ctx context.Context) (int, error) {
	if err := r.ensureVersionTable(ctx); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	var version int
	err := r.db.QueryRowContext(ctx, "SELECT version FROM schema_version").Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

// Migrations reads migration files sorted by version.
func (r *Runner) Migrations() ([]Migration, error) {
	files, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(file.Name(), "_", 2)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid migration filename format: %s (expected NNN_name.sql)", file.Name())
		}
		version, err := strconv.Atoi(parts[0])
		if err != nil || version < 1 {
			return nil, fmt.Errorf("invalid version number in filename %s", file.Name())
		}

		content, err := fs.ReadFile(r.fs, file.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}

	return migrations, nil
}

// Apply runs every migration newer than the current version, each in its own
// transaction, and returns how many were applied.
func (r *Runner) Apply(ctx context.Context, logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	current, err := r.CurrentVersion(ctx)
	if err != nil {
		return 0, err
	}
	migrations, err := r.Migrations()
	if err != nil {
		return 0, err
	}
	if len(migrations) == 0 {
		return 0, nil
	}

	latest := migrations[len(migrations)-1].Version
	if current > latest {
		return 0, fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade petspa", current, latest)
	}

	start := time.Now()
	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		logFn(fmt.Sprintf("applying migration %d: %s", m.Version, m.Name))

		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return applied, fmt.Errorf("failed to begin transaction for migration %d: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("failed to clear version in migration %d: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES ("+r.dialect.placeholder()+")", m.Version); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("failed to set version in migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
		applied++
	}

	if applied > 0 {
		logFn(fmt.Sprintf("applied %d migration(s) in %v", applied, time.Since(start)))
	}
	return applied, nil
}
