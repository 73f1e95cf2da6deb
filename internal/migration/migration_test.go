package migration

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyFreshDatabase(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	fsys := fstest.MapFS{
		"002_add_notes.sql": {Data: []byte("ALTER TABLE pets ADD COLUMN notes TEXT;")},
		"001_init.sql":      {Data: []byte("CREATE TABLE pets (id INTEGER PRIMARY KEY, name TEXT);")},
		"README.md":         {Data: []byte("ignored")},
	}

	runner := NewRunner(db, fsys, SQLite)

	var logs []string
	applied, err := runner.Apply(ctx, func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if len(logs) == 0 || !strings.Contains(logs[0], "001") {
		t.Errorf("expected migrations applied in order, logs = %v", logs)
	}

	version, err := runner.CurrentVersion(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	if _, err := db.Exec("INSERT INTO pets (name, notes) VALUES ('Milo', 'x')"); err != nil {
		t.Errorf("schema not applied: %v", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE pets (id INTEGER PRIMARY KEY);")},
	}
	runner := NewRunner(db, fsys, SQLite)

	if _, err := runner.Apply(ctx, nil); err != nil {
		t.Fatal(err)
	}
	applied, err := runner.Apply(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if applied != 0 {
		t.Errorf("second Apply applied %d migrations", applied)
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	fsys := fstest.MapFS{
		"001_init.sql":   {Data: []byte("CREATE TABLE pets (id INTEGER PRIMARY KEY);")},
		"002_broken.sql": {Data: []byte("THIS IS NOT SQL;")},
	}
	runner := NewRunner(db, fsys, SQLite)

	applied, err := runner.Apply(ctx, nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if v, _ := runner.CurrentVersion(ctx); v != 1 {
		t.Errorf("version = %d, want 1", v)
	}
}

func TestApplyRejectsNewerDatabase(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE pets (id INTEGER PRIMARY KEY);")},
	}
	runner := NewRunner(db, fsys, SQLite)
	if _, err := runner.Apply(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 9"); err != nil {
		t.Fatal(err)
	}

	if _, err := runner.Apply(ctx, nil); err == nil || !strings.Contains(err.Error(), "newer") {
		t.Errorf("expected newer-schema error, got %v", err)
	}
}

func TestMigrationsValidation(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"missing underscore", fstest.MapFS{"001.sql": {Data: []byte("")}}},
		{"non numeric", fstest.MapFS{"abc_init.sql": {Data: []byte("")}}},
		{"zero version", fstest.MapFS{"000_init.sql": {Data: []byte("")}}},
		{"duplicate", fstest.MapFS{
			"001_a.sql": {Data: []byte("")},
			"1_b.sql":   {Data: []byte("")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(nil, tt.fsys, SQLite)
			if _, err := runner.Migrations(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDialectPlaceholder(t *testing.T) {
	if SQLite.placeholder() != "?" || Postgres.placeholder() != "$1" {
		t.Error("unexpected placeholders")
	}
}
