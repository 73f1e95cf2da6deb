package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/petspa/internal/api"
	"github.com/julianstephens/petspa/internal/calendar"
	"github.com/julianstephens/petspa/internal/config"
	"github.com/julianstephens/petspa/internal/server"
	"github.com/julianstephens/petspa/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "petspa.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ts := httptest.NewServer(server.NewRouter(server.Options{Store: store, Quiet: true}))
	t.Cleanup(ts.Close)

	cfg := config.DefaultConfig()
	cfg.APIURL = ts.URL + "/api"
	cfg.Locale = "en"

	out := &bytes.Buffer{}
	return &Context{
		Config:     cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
		Out:        out,
	}, out
}

func addTestAppointment(t *testing.T, ctx *Context, pet, owner string) {
	t.Helper()
	cmd := &AddCmd{Pet: pet, Owner: owner, Service: "Cepillado", Date: "2025-03-01", Time: "09:30"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("add %s: %v", pet, err)
	}
}

func TestAddAndList(t *testing.T) {
	ctx, out := setupTestContext(t)

	addTestAppointment(t, ctx, "Milo", "Ana")
	if !strings.Contains(out.String(), "Created #1 2025-03-01 09:30 Milo (Ana) Cepillado") {
		t.Errorf("add output = %q", out.String())
	}

	out.Reset()
	if err := (&ListCmd{Date: "2025-03-01"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[1] 2025-03-01 09:30  Milo (Ana) - Cepillado [Pending]") {
		t.Errorf("list output = %q", out.String())
	}

	out.Reset()
	if err := (&ListCmd{Date: "2025-03-02"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No appointments on 2025-03-02") {
		t.Errorf("empty list output = %q", out.String())
	}
}

func TestAddValidation(t *testing.T) {
	ctx, _ := setupTestContext(t)

	tests := []struct {
		name string
		cmd  AddCmd
	}{
		{"blank pet", AddCmd{Pet: " ", Owner: "Ana", Service: "Cepillado"}},
		{"blank service", AddCmd{Pet: "Milo", Owner: "Ana", Service: " "}},
		{"bad date", AddCmd{Pet: "Milo", Owner: "Ana", Service: "Cepillado", Date: "1/3/2025"}},
		{"bad time", AddCmd{Pet: "Milo", Owner: "Ana", Service: "Cepillado", Time: "late"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
		})
	}

	err := (&AddCmd{Pet: "", Owner: "Ana", Service: "Cepillado"}).Run(ctx)
	if !errors.Is(err, calendar.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestStatusCyclesAndSets(t *testing.T) {
	ctx, out := setupTestContext(t)
	addTestAppointment(t, ctx, "Milo", "Ana")

	out.Reset()
	if err := (&StatusCmd{ID: 1}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != "Milo: In progress" {
		t.Errorf("cycle output = %q", got)
	}

	out.Reset()
	if err := (&StatusCmd{ID: 1, Set: "cancelled"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&StatusCmd{ID: 1}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != "Milo: Pending" {
		t.Errorf("cycle from cancelled = %q", got)
	}

	if err := (&StatusCmd{ID: 1, Set: "done"}).Run(ctx); err == nil {
		t.Error("expected an error for an unknown status")
	}
}

func TestEditKeepsUnsetFields(t *testing.T) {
	ctx, out := setupTestContext(t)
	addTestAppointment(t, ctx, "Milo", "Ana")

	out.Reset()
	if err := (&EditCmd{ID: 1, Time: "14:15:00", Notes: "short cut"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Updated #1 2025-03-01 14:15 Milo (Ana) Cepillado") {
		t.Errorf("edit output = %q", out.String())
	}

	if err := (&EditCmd{ID: 1}).Run(ctx); err == nil {
		t.Error("expected an error when nothing changes")
	}
}

func TestDeleteConfirmation(t *testing.T) {
	ctx, out := setupTestContext(t)
	addTestAppointment(t, ctx, "Milo", "Ana")

	ctx.In = strings.NewReader("n\n")
	if err := (&DeleteCmd{ID: 1}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cancelled.") {
		t.Errorf("output = %q", out.String())
	}
	if err := (&ShowCmd{ID: 1}).Run(ctx); err != nil {
		t.Fatalf("appointment was deleted after declining: %v", err)
	}

	ctx.In = strings.NewReader("y\n")
	if err := (&DeleteCmd{ID: 1}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	err := (&ShowCmd{ID: 1}).Run(ctx)
	if !api.IsNotFound(err) {
		t.Errorf("show after delete = %v, want not found", err)
	}
	if err := (&DeleteCmd{ID: 1, Yes: true}).Run(ctx); !api.IsNotFound(err) {
		t.Errorf("second delete = %v, want not found", err)
	}
}

func TestSearch(t *testing.T) {
	ctx, out := setupTestContext(t)
	addTestAppointment(t, ctx, "Milo", "Ana María")
	addTestAppointment(t, ctx, "Luna", "Bruno")

	out.Reset()
	if err := (&SearchCmd{Owner: "maría"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Milo") || strings.Contains(out.String(), "Luna") {
		t.Errorf("search output = %q", out.String())
	}

	if err := (&SearchCmd{Owner: "  "}).Run(ctx); err == nil {
		t.Error("expected an error for a blank owner")
	}
}

func TestUnreachableService(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.APIURL = "http://127.0.0.1:1/api"
	ctx := &Context{Config: cfg, Out: &bytes.Buffer{}}

	err := (&ListCmd{Date: "2025-03-01"}).Run(ctx)
	var terr *api.TransportError
	if !errors.As(err, &terr) || terr.StatusCode != 0 {
		t.Errorf("error = %v, want a network TransportError", err)
	}
}

func TestConfigCommands(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&ConfigPathCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != ctx.ConfigPath {
		t.Errorf("path output = %q", out.String())
	}

	if err := (&ConfigInitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(ctx.ConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
	if err := (&ConfigInitCmd{}).Run(ctx); err == nil {
		t.Error("expected an error when the file exists")
	}
	if err := (&ConfigInitCmd{Force: true}).Run(ctx); err != nil {
		t.Errorf("forced init: %v", err)
	}

	out.Reset()
	if err := (&ConfigShowCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "api_url: "+ctx.Config.APIURL) {
		t.Errorf("show output = %q", out.String())
	}
}

func TestOpenStore(t *testing.T) {
	store, err := openStore("postgres://groomer@localhost/petspa")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(store.Describe(), "postgres") {
		t.Errorf("Describe() = %q, want a postgres store", store.Describe())
	}

	path := filepath.Join(t.TempDir(), "petspa.db")
	store, err = openStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(store.Describe(), path) {
		t.Errorf("Describe() = %q, want the sqlite path", store.Describe())
	}
}

func TestBackupCommands(t *testing.T) {
	ctx, out := setupTestContext(t)
	dbPath := filepath.Join(t.TempDir(), "dev.db")
	ctx.Config.Server.Database = dbPath

	store := sqlite.NewStore(dbPath)
	if err := store.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	store.Close()

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Backup created: ") {
		t.Errorf("create output = %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), filepath.Join(filepath.Dir(dbPath), "backups")) {
		t.Errorf("list output = %q", out.String())
	}

	ctx.Config.Server.Database = "postgres://groomer@localhost/petspa"
	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected an error for a postgres database")
	}
}
