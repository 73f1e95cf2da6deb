package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/petspa/internal/backup"
	"github.com/julianstephens/petspa/internal/config"
	"github.com/julianstephens/petspa/internal/logger"
	"github.com/julianstephens/petspa/internal/server"
	"github.com/julianstephens/petspa/internal/storage"
	"github.com/julianstephens/petspa/internal/storage/postgres"
	"github.com/julianstephens/petspa/internal/storage/sqlite"
	"github.com/julianstephens/petspa/internal/telemetry"
)

type ServeCmd struct {
	Listen   string `short:"l" help:"Listen address. Defaults to server.listen from the config."`
	Database string `help:"SQLite file path or PostgreSQL connection string. Defaults to server.database from the config."`
	Quiet    bool   `help:"Disable the request log."`
	Backup   bool   `help:"Snapshot the SQLite database before serving."`
}

// openStore picks the storage backend from the shape of dsn.
func openStore(dsn string) (storage.Provider, error) {
	if storage.IsPostgres(dsn) {
		return postgres.New(dsn), nil
	}
	path, err := config.ExpandPath(dsn)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}

func (c *ServeCmd) Run(ctx *Context) error {
	addr := c.Listen
	if addr == "" {
		addr = ctx.Config.Server.Listen
	}
	dsn := c.Database
	if dsn == "" {
		dsn = ctx.Config.Server.Database
	}

	runCtx, stop := signal.NotifyContext(ctx.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(runCtx, ctx.Config.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	store, err := openStore(dsn)
	if err != nil {
		return err
	}
	if err := store.Init(runCtx); err != nil {
		return fmt.Errorf("failed to open %s: %w", store.Describe(), err)
	}
	defer store.Close()

	if c.Backup && !storage.IsPostgres(dsn) {
		if path, err := config.ExpandPath(dsn); err == nil {
			if _, err := backup.NewManager(path).Create(runCtx); err != nil {
				logger.Warn("automatic backup failed", "error", err)
			}
		}
	}

	ctx.printf("Serving appointments from %s on http://%s/api\n", store.Describe(), addr)
	srv := server.New(addr, server.Options{Store: store, Quiet: c.Quiet})
	return srv.Run(runCtx)
}
