package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/petspa/internal/constants"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetLevel() != log.WarnLevel {
		t.Errorf("default level = %v, want warn", Logger.GetLevel())
	}

	Warn("Test warning message")
	if _, err := os.Stat(filepath.Join(logDir, constants.LogFileName)); err != nil {
		t.Errorf("log file not written: %v", err)
	}
}

func TestConfigLevel(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    log.Level
		wantErr bool
	}{
		{"client default", Config{}, log.WarnLevel, false},
		{"service default", Config{Mode: ModeService}, log.InfoLevel, false},
		{"explicit info", Config{Level: "info"}, log.InfoLevel, false},
		{"debug wins", Config{Level: "error", Debug: true}, log.DebugLevel, false},
		{"service floor", Config{Mode: ModeService, Level: "error"}, log.InfoLevel, false},
		{"service debug", Config{Mode: ModeService, Level: "debug"}, log.DebugLevel, false},
		{"invalid", Config{Level: "chatty"}, log.WarnLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.level()
			if (err != nil) != tt.wantErr {
				t.Fatalf("level() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigFormatter(t *testing.T) {
	tests := []struct {
		format  string
		want    log.Formatter
		wantErr bool
	}{
		{"", log.TextFormatter, false},
		{"JSON", log.JSONFormatter, false},
		{"logfmt", log.LogfmtFormatter, false},
		{"xml", log.TextFormatter, true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := Config{Format: tt.format}.formatter()
			if (err != nil) != tt.wantErr {
				t.Fatalf("formatter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("formatter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInitBadValuesStillLogs(t *testing.T) {
	if err := Init(Config{Level: "chatty", Format: "xml", ConfigDir: t.TempDir()}); err != nil {
		t.Fatal(err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil")
	}
}

func TestInitWriterAndWith(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, log.InfoLevel)

	Debug("hidden")
	Info("request served", "status", 200)
	With("request_id", "abc").Info("scoped")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered: %q", out)
	}
	if !strings.Contains(out, "request served") || !strings.Contains(out, "status=200") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "request_id=abc") {
		t.Errorf("With() fields missing: %q", out)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
	if With("k", "v") != nil {
		t.Error("With() should be nil without a logger")
	}
}
