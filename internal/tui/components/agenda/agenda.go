package agenda

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/petspa/internal/models"
)

type Item struct {
	Appointment models.Appointment
	label       models.StatusLabeler
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  %s", i.Appointment.Time, i.Appointment.PetName)
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %s | %s", i.Appointment.OwnerName, i.Appointment.Service, i.label(i.Appointment.Status))
	if i.Appointment.Notes != "" {
		desc += " | " + i.Appointment.Notes
	}
	return desc
}

func (i Item) FilterValue() string { return i.Appointment.OwnerName }

type Model struct {
	list  list.Model
	label models.StatusLabeler
	empty string
}

func New(label models.StatusLabeler, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the main model
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("pgup"))
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("pgdown"))

	return Model{list: l, label: label, empty: "No appointments."}
}

// SetEmptyText sets the text shown when there is nothing to list.
func (m *Model) SetEmptyText(s string) {
	m.empty = s
}

func (m *Model) SetAppointments(appts []models.Appointment) {
	items := make([]list.Item, len(appts))
	for i, a := range appts {
		items[i] = Item{Appointment: a, label: m.label}
	}
	m.list.SetItems(items)
}

// Selected returns the highlighted appointment.
func (m Model) Selected() (models.Appointment, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Appointment{}, false
	}
	return i.Appointment, true
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  " + m.empty
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
