package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/petspa/internal/constants"
)

// Logger is the process-wide logger. Nil until Init or InitWriter runs, in
// which case the package funcs drop everything.
var Logger *log.Logger

type Mode int

const (
	// ModeClient is the calendar and one-shot commands: file only, warnings
	// and up unless asked otherwise.
	ModeClient Mode = iota
	// ModeService is `serve`: the access log goes to stderr as well.
	ModeService
)

type Config struct {
	Mode      Mode
	Debug     bool
	Level     string // debug|info|warn|error; Debug wins
	Format    string // text|json
	ConfigDir string
	// Stderr mirrors debug output to stderr in client mode. Left off for
	// the TUI so log lines never tear the alt screen.
	Stderr bool
}

func (c Config) level() (log.Level, error) {
	if c.Debug {
		return log.DebugLevel, nil
	}
	level := log.WarnLevel
	if c.Mode == ModeService {
		level = log.InfoLevel
	}
	if c.Level == "" {
		return level, nil
	}
	parsed, err := log.ParseLevel(c.Level)
	if err != nil {
		return level, fmt.Errorf("invalid log level %q", c.Level)
	}
	// A service never drops below info, or the access log would vanish.
	if c.Mode == ModeService && parsed > log.InfoLevel {
		return log.InfoLevel, nil
	}
	return parsed, nil
}

func (c Config) formatter() (log.Formatter, error) {
	switch strings.ToLower(c.Format) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	}
	return log.TextFormatter, fmt.Errorf("invalid log format %q", c.Format)
}

// Init builds the global logger writing to a rotated file under
// <ConfigDir>/logs. A bad level or format is reported but still leaves a
// working logger behind.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFileName),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var writer io.Writer = file
	if cfg.Mode == ModeService || (cfg.Debug && cfg.Stderr) {
		writer = io.MultiWriter(os.Stderr, file)
	}

	level, levelErr := cfg.level()
	formatter, formatErr := cfg.formatter()
	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Formatter:       formatter,
		Prefix:          constants.AppName,
	})

	if levelErr != nil {
		Logger.Warn("falling back to default log level", "error", levelErr)
	}
	if formatErr != nil {
		Logger.Warn("falling back to text log format", "error", formatErr)
	}
	return nil
}

// InitWriter points the global logger at w with no file behind it.
func InitWriter(w io.Writer, level log.Level) {
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
}

// With returns a child of the global logger carrying keyvals, or nil.
func With(keyvals ...any) *log.Logger {
	if Logger == nil {
		return nil
	}
	return Logger.With(keyvals...)
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs and exits with status 1, even without a logger.
func Fatal(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
