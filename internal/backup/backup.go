package backup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/petspa/internal/logger"
)

const (
	// MaxBackups is how many snapshots are kept after rotation.
	MaxBackups = 14
	DirName    = "backups"
	filePrefix = "petspa-"
	fileSuffix = ".db"
	stampFmt   = "20060102-150405"
)

// Info describes a snapshot on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots the development service's SQLite database into a
// backups directory next to it.
type Manager struct {
	dbPath string
	dir    string
	now    func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
		now:    time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

// Create writes a consistent copy of the database with VACUUM INTO and
// prunes snapshots beyond MaxBackups.
func (m *Manager) Create(ctx context.Context) (string, error) {
	path, err := m.create(ctx)
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("failed to rotate old backups", "dir", m.dir, "error", err)
	}
	return path, nil
}

func (m *Manager) create(ctx context.Context) (string, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}

	db, err := sql.Open("sqlite", m.dbPath)
	if err != nil {
		return "", err
	}
	defer db.Close()

	if err := verify(ctx, db); err != nil {
		return "", fmt.Errorf("source database is unreadable: %w", err)
	}
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return "", fmt.Errorf("failed to back up database: %w", err)
	}
	logger.Info("database backed up", "path", path)
	return path, nil
}

// nextPath names a snapshot after the current time, adding a counter when
// several are taken within one second.
func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(stampFmt)
	path := filepath.Join(m.dir, filePrefix+stamp+fileSuffix)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if i > 100 {
			return "", fmt.Errorf("failed to generate a unique backup name")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", filePrefix, stamp, i, fileSuffix))
	}
}

// List returns the snapshots, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	type entryInfo struct {
		Info
		seq int
	}
	var found []entryInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		seq := 0
		if len(stamp) > len(stampFmt) {
			if _, err := fmt.Sscanf(stamp[len(stampFmt):], "-%d", &seq); err != nil {
				continue
			}
			stamp = stamp[:len(stampFmt)]
		}
		ts, err := time.ParseInLocation(stampFmt, stamp, time.Local)
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, entryInfo{
			Info: Info{
				Path:      filepath.Join(m.dir, name),
				Timestamp: ts,
				Size:      info.Size(),
			},
			seq: seq,
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Timestamp.Equal(found[j].Timestamp) {
			return found[i].seq > found[j].seq
		}
		return found[i].Timestamp.After(found[j].Timestamp)
	})

	backups := make([]Info, len(found))
	for i, f := range found {
		backups[i] = f.Info
	}
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the database with the snapshot at path. The current
// database is snapshotted first. The service must not be running.
func (m *Manager) Restore(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("backup does not exist: %s", path)
	}
	src, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	err = verify(ctx, src)
	src.Close()
	if err != nil {
		return fmt.Errorf("backup %s is not a valid database: %w", path, err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		current, err := m.create(ctx)
		if err != nil {
			return fmt.Errorf("failed to back up current database before restore: %w", err)
		}
		logger.Info("saved current database before restore", "path", current)
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to copy backup: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}

func verify(ctx context.Context, db *sql.DB) error {
	var n int
	return db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master").Scan(&n)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := out.ReadFrom(in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
