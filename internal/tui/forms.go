package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/petspa/internal/appointments"
	"github.com/julianstephens/petspa/internal/calendar"
)

// AppointmentFormModel holds the huh-bound strings of the appointment dialog.
type AppointmentFormModel struct {
	PetName   string
	OwnerName string
	Service   string
	Date      string
	Time      string
	Notes     string
}

func newAppointmentFormModel(f calendar.Form) *AppointmentFormModel {
	fm := &AppointmentFormModel{
		PetName:   f.PetName,
		OwnerName: f.OwnerName,
		Service:   f.Service,
		Notes:     f.Notes,
	}
	if !f.Date.IsZero() {
		fm.Date = appointments.FormatDateForAPI(f.Date)
	}
	if !f.Time.IsZero() {
		fm.Time = appointments.FormatTimeForAPI(f.Time)
	}
	return fm
}

// Form converts the dialog back into a draft. Date or time text that does
// not parse is treated as missing, so the machine reports it as required.
func (fm *AppointmentFormModel) Form() calendar.Form {
	f := calendar.Form{
		PetName:   fm.PetName,
		OwnerName: fm.OwnerName,
		Service:   fm.Service,
		Notes:     fm.Notes,
	}
	if d, err := appointments.ParseAPIDate(strings.TrimSpace(fm.Date)); err == nil {
		f.Date = d
	}
	if t, err := appointments.ParseAPITime(strings.TrimSpace(fm.Time)); err == nil {
		f.Time = t
	}
	return f
}

// serviceOptions lists the catalogue, keeping a current value that is no
// longer offered so editing does not silently change it.
func serviceOptions(services []string, current string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(services)+2)
	opts = append(opts, huh.NewOption("-", ""))
	found := current == ""
	for _, s := range services {
		if s == current {
			found = true
		}
		opts = append(opts, huh.NewOption(s, s))
	}
	if !found {
		opts = append(opts, huh.NewOption(current, current))
	}
	return opts
}

// NewAppointmentForm builds the create/edit dialog. Required-field checks
// are left to the machine so they run in a fixed order.
func NewAppointmentForm(title string, fm *AppointmentFormModel, services []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title),
			huh.NewInput().
				Title("Pet").
				Value(&fm.PetName),
			huh.NewInput().
				Title("Owner").
				Value(&fm.OwnerName),
			huh.NewSelect[string]().
				Title("Service").
				Options(serviceOptions(services, fm.Service)...).
				Value(&fm.Service),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&fm.Date),
			huh.NewInput().
				Title("Time").
				Description("HH:mm").
				Value(&fm.Time),
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewDateForm asks for a date to jump to.
func NewDateForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Go to date").
				Description("YYYY-MM-DD").
				Value(value).
				Validate(func(s string) error {
					_, err := appointments.ParseAPIDate(strings.TrimSpace(s))
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewSearchForm asks for an owner name. An empty query clears the search.
func NewSearchForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search by owner").
				Value(value),
		),
	).WithTheme(huh.ThemeDracula())
}
