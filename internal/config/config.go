package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/petspa/internal/constants"
)

const (
	EnvAPIURL   = "PETSPA_API_URL"
	EnvLocale   = "PETSPA_LOCALE"
	EnvLogLevel = "PETSPA_LOG_LEVEL"
)

var userHomeDirFunc = os.UserHomeDir

type NotificationsConfig struct {
	DurationMs int `yaml:"duration_ms"`
	// Max bounds the toast queue. Negative disables the bound.
	Max int `yaml:"max"`
}

// ServerConfig configures the development appointment service.
type ServerConfig struct {
	Listen string `yaml:"listen"`
	// Database is a sqlite file path or a postgres:// connection string.
	Database string `yaml:"database"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

type Config struct {
	APIURL string `yaml:"api_url"`
	// Timeout is a Go duration string; empty or "0" means no timeout.
	Timeout       string              `yaml:"timeout"`
	Locale        string              `yaml:"locale"`
	LogLevel      string              `yaml:"log_level"`
	LogFormat     string              `yaml:"log_format"`
	Services      []string            `yaml:"services"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Server        ServerConfig        `yaml:"server"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
}

func DefaultConfig() *Config {
	return &Config{
		APIURL:    constants.DefaultAPIBaseURL,
		Locale:    constants.DefaultLocale,
		LogLevel:  "warn",
		LogFormat: "text",
		Services:  append([]string(nil), constants.DefaultServices...),
		Notifications: NotificationsConfig{
			DurationMs: constants.NotificationDurationMs,
			Max:        constants.DefaultNotificationMax,
		},
		Server: ServerConfig{
			Listen:   constants.DefaultListenAddr,
			Database: constants.DefaultDatabase,
		},
		Telemetry: TelemetryConfig{
			Endpoint:    "localhost:4317",
			Insecure:    true,
			ServiceName: constants.AppName,
		},
	}
}

// Normalize fills zero values with defaults so partial files still work.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if strings.TrimSpace(c.APIURL) == "" {
		c.APIURL = d.APIURL
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	switch c.Locale {
	case "es", "en":
	default:
		c.Locale = d.Locale
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
	if len(c.Services) == 0 {
		c.Services = d.Services
	}
	if c.Notifications.DurationMs < 0 {
		c.Notifications.DurationMs = 0
	} else if c.Notifications.DurationMs == 0 {
		c.Notifications.DurationMs = d.Notifications.DurationMs
	}
	if c.Notifications.Max == 0 {
		c.Notifications.Max = d.Notifications.Max
	}
	if c.Server.Listen == "" {
		c.Server.Listen = d.Server.Listen
	}
	if c.Server.Database == "" {
		c.Server.Database = d.Server.Database
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = d.Telemetry.Endpoint
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = d.Telemetry.ServiceName
	}
}

// Validate reports values Normalize cannot repair.
func (c *Config) Validate() error {
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	return nil
}

// RequestTimeout parses Timeout. Zero means none.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.Timeout == "" || c.Timeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", c.Timeout)
	}
	return d, nil
}

func (c *Config) NotificationDuration() time.Duration {
	return time.Duration(c.Notifications.DurationMs) * time.Millisecond
}

// ApplyEnv overrides fields from PETSPA_* environment variables.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv(EnvLocale)); v == "es" || v == "en" {
		c.Locale = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

// Load reads the YAML file at path. A missing file yields the defaults
// without creating anything; use Save (or `petspa config init`) for that.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		cfg = &Config{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.Normalize()
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".petspa-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := userHomeDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Dir is the directory holding the config file; logs live beneath it.
func Dir(path string) (string, error) {
	p, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	return filepath.Dir(p), nil
}
