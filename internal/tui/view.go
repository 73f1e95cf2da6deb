package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/petspa/internal/constants"
	"github.com/julianstephens/petspa/internal/tui/components/toasts"
)

// toastWidth is the width of the notification column.
const toastWidth = 40

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateEditing, constants.StateGoToDate, constants.StateSearchPrompt:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = docStyle.Render(m.agenda.View())
	}

	main := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.help.View(m),
	)

	if len(m.toasts) == 0 {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", toasts.Render(m.toasts, toastWidth))
}

func (m Model) viewHeader() string {
	title := m.snapshot.Date.Format("Monday, 2006-01-02")
	count := len(m.snapshot.Appointments)
	if m.state == constants.StateSearch {
		title = fmt.Sprintf("Owner: %q", m.snapshot.SearchQuery)
		count = len(m.snapshot.SearchResults)
	}

	summary := fmt.Sprintf("%s: %d", m.opts.Summary, count)
	if m.Busy() {
		summary += " " + m.spinner.View()
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(title),
		summaryStyle.Render(summary),
	)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(m.machine.Messages().DeleteConfirm),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
