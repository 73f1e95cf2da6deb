package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/petspa/internal/calendar"
	"github.com/julianstephens/petspa/internal/logger"
	"github.com/julianstephens/petspa/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	repo, err := ctx.Repository()
	if err != nil {
		return err
	}

	queue := ctx.NewQueue()
	machine := calendar.New(repo, queue, calendar.WithMessages(ctx.Messages()))

	summary := "Day summary"
	if ctx.Config.Locale == "es" {
		summary = "Resumen del día"
	}

	logger.Debug("starting calendar", "api_url", ctx.Config.APIURL, "locale", ctx.Config.Locale)
	model := tui.NewModel(ctx.Context(), machine, queue, tui.Options{
		Services: ctx.Config.Services,
		Labels:   ctx.Labels(),
		Summary:  summary,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("calendar exited: %w", err)
	}
	return nil
}
