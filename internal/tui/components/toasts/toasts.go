package toasts

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/petspa/internal/notify"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	severityColors = map[notify.Severity]lipgloss.Color{
		notify.Success: lipgloss.Color("42"),
		notify.Error:   lipgloss.Color("196"),
		notify.Warning: lipgloss.Color("214"),
		notify.Info:    lipgloss.Color("39"),
	}
)

// Render stacks the notifications oldest first, each box at most width
// columns wide.
func Render(items []notify.Notification, width int) string {
	if len(items) == 0 {
		return ""
	}

	boxes := make([]string, 0, len(items))
	for _, n := range items {
		color, ok := severityColors[n.Severity]
		if !ok {
			color = severityColors[notify.Info]
		}

		var b strings.Builder
		b.WriteString(titleStyle.Foreground(color).Render(n.Title))
		if n.Message != "" {
			b.WriteString("\n")
			b.WriteString(messageStyle.Render(n.Message))
		}

		style := boxStyle.BorderForeground(color)
		if width > 4 {
			style = style.Width(width - 2)
		}
		boxes = append(boxes, style.Render(b.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}
