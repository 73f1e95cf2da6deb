package cli

import (
	"fmt"

	"github.com/julianstephens/petspa/internal/backup"
	"github.com/julianstephens/petspa/internal/config"
	"github.com/julianstephens/petspa/internal/storage"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Snapshot the development database." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List database snapshots."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore the development database from a snapshot."`
}

// backupManager returns a manager for the configured SQLite database.
func backupManager(ctx *Context) (*backup.Manager, error) {
	dsn := ctx.Config.Server.Database
	if storage.IsPostgres(dsn) {
		return nil, fmt.Errorf("backups are only supported for SQLite databases; use pg_dump for PostgreSQL")
	}
	path, err := config.ExpandPath(dsn)
	if err != nil {
		return nil, err
	}
	return backup.NewManager(path), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create(ctx.Context())
	if err != nil {
		return err
	}
	ctx.printf("Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		ctx.printf("No backups in %s\n", mgr.Dir())
		return nil
	}
	for _, b := range backups {
		ctx.printf("  %s  %8d bytes  %s\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Size, b.Path)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Snapshot file to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	if err := mgr.Restore(ctx.Context(), c.Path); err != nil {
		return err
	}
	ctx.printf("Restored %s\n", c.Path)
	return nil
}
