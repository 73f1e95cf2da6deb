package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName           = "petspa"
	Version           = "v0.1.0"
	DefaultConfigPath = "~/.config/petspa/config.yaml"
	DefaultAPIBaseURL = "http://localhost:8080/api"
	DefaultListenAddr = "127.0.0.1:8080"
	DefaultDatabase   = "~/.config/petspa/petspa.db"
	DefaultLocale     = "es"

	// DateFormat is the wire date format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the wire time format (HH:mm, 24-hour)
	TimeFormat = "15:04"

	// Notification constants
	NotificationDurationMs = 5000
	DefaultNotificationMax = 8

	// LogFileName is created under <config dir>/logs
	LogFileName = "petspa.log"
)

// Session States
const (
	StateAgenda SessionState = iota
	StateSearch
	StateEditing
	StateGoToDate
	StateSearchPrompt
	StateConfirmDelete
)

// NotificationDuration is the default lifetime of a notification.
const NotificationDuration = NotificationDurationMs * time.Millisecond

// DefaultServices is the grooming catalogue offered by the appointment form.
var DefaultServices = []string{
	"Baño completo",
	"Corte de pelo",
	"Limpieza dental",
	"Corte de uñas",
	"Consulta veterinaria",
	"Vacunación",
	"Desparasitación",
	"Cepillado",
	"Tratamiento antipulgas",
	"Limpieza de oídos",
}
