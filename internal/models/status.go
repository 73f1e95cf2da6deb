package models

import "fmt"

// Status is the wire value of an appointment's lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// StatusCycle is the order in which CycleStatus advances an appointment.
var StatusCycle = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Next returns the following status in the cycle. Unknown values restart
// the cycle at pending.
func (s Status) Next() Status {
	for i, st := range StatusCycle {
		if st == s {
			return StatusCycle[(i+1)%len(StatusCycle)]
		}
	}
	return StatusPending
}

// ParseStatus accepts only the four wire tokens.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("invalid status %q (must be pending, in_progress, completed or cancelled)", v)
	}
	return s, nil
}

// StatusLabeler renders a status for display. Labels are presentation only
// and never sent to the service.
type StatusLabeler func(Status) string

var spanishLabels = map[Status]string{
	StatusPending:    "Pendiente",
	StatusInProgress: "En progreso",
	StatusCompleted:  "Completado",
	StatusCancelled:  "Cancelado",
}

var englishLabels = map[Status]string{
	StatusPending:    "Pending",
	StatusInProgress: "In progress",
	StatusCompleted:  "Completed",
	StatusCancelled:  "Cancelled",
}

func SpanishLabels(s Status) string { return labelOr(spanishLabels, s) }

func EnglishLabels(s Status) string { return labelOr(englishLabels, s) }

// LabelerFor picks the label set for a locale, defaulting to English.
func LabelerFor(locale string) StatusLabeler {
	if locale == "es" {
		return SpanishLabels
	}
	return EnglishLabels
}

func labelOr(labels map[Status]string, s Status) string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}
