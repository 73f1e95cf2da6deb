package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/petspa/internal/constants"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLocale, "")
	t.Setenv(EnvLogLevel, "")
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != constants.DefaultAPIBaseURL || cfg.Locale != "es" {
		t.Errorf("defaults = %+v", cfg)
	}
	if len(cfg.Services) != 10 {
		t.Errorf("services = %d, want 10", len(cfg.Services))
	}
	if cfg.NotificationDuration() != 5*time.Second {
		t.Errorf("notification duration = %v", cfg.NotificationDuration())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Load() should not create the file")
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLocale, "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.APIURL = "http://groomer.local:9000/api/"
	cfg.Locale = "en"
	cfg.Timeout = "15s"
	cfg.Notifications.Max = 3

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("permissions = %o, want 600", perm)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.APIURL != "http://groomer.local:9000/api" {
		t.Errorf("api url = %q, trailing slash should be trimmed", got.APIURL)
	}
	if got.Locale != "en" || got.Notifications.Max != 3 {
		t.Errorf("loaded = %+v", got)
	}
	if d, _ := got.RequestTimeout(); d != 15*time.Second {
		t.Errorf("timeout = %v", d)
	}
}

func TestPartialFileIsNormalized(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLocale, "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("locale: fr\nnotifications:\n  max: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Locale != constants.DefaultLocale {
		t.Errorf("unknown locale should fall back, got %q", cfg.Locale)
	}
	if cfg.Notifications.Max != -1 {
		t.Errorf("negative max (unbounded) should be kept, got %d", cfg.Notifications.Max)
	}
	if cfg.Notifications.DurationMs != constants.NotificationDurationMs {
		t.Errorf("duration = %d", cfg.Notifications.DurationMs)
	}
	if cfg.Server.Listen != constants.DefaultListenAddr {
		t.Errorf("server listen = %q", cfg.Server.Listen)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://env.example/api/")
	t.Setenv(EnvLocale, "en")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIURL != "http://env.example/api" || cfg.Locale != "en" || cfg.LogLevel != "debug" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestInvalidTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timeout: soon\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid timeout")
	}
}

func TestInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("services: [unterminated\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestExpandPath(t *testing.T) {
	old := userHomeDirFunc
	defer func() { userHomeDirFunc = old }()
	userHomeDirFunc = func() (string, error) { return "/home/groomer", nil }

	tests := []struct {
		in       string
		expected string
	}{
		{"~/.config/petspa/config.yaml", "/home/groomer/.config/petspa/config.yaml"},
		{"~", "/home/groomer"},
		{"/etc/petspa.yaml", "/etc/petspa.yaml"},
		{"relative.yaml", "relative.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}
