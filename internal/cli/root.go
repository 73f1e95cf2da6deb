package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/petspa/internal/api"
	"github.com/julianstephens/petspa/internal/appointments"
	"github.com/julianstephens/petspa/internal/calendar"
	"github.com/julianstephens/petspa/internal/config"
	"github.com/julianstephens/petspa/internal/models"
	"github.com/julianstephens/petspa/internal/notify"
)

type Context struct {
	Config     *config.Config
	ConfigPath string
	Debug      bool

	// Out and In default to stdout and stdin.
	Out io.Writer
	In  io.Reader

	repo *appointments.Repository
}

func (c *Context) stdout() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

func (c *Context) stdin() io.Reader {
	if c.In != nil {
		return c.In
	}
	return os.Stdin
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.stdout(), format, args...)
}

// Context returns the context requests run under.
func (c *Context) Context() context.Context {
	return context.Background()
}

// Repository builds the appointment repository for the configured service.
func (c *Context) Repository() (*appointments.Repository, error) {
	if c.repo != nil {
		return c.repo, nil
	}
	timeout, err := c.Config.RequestTimeout()
	if err != nil {
		return nil, err
	}
	client, err := api.New(c.Config.APIURL, api.WithTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	c.repo = appointments.NewRepository(client)
	return c.repo, nil
}

func (c *Context) Messages() calendar.Messages {
	return calendar.MessagesFor(c.Config.Locale)
}

func (c *Context) Labels() models.StatusLabeler {
	return models.LabelerFor(c.Config.Locale)
}

// NewQueue builds a notification queue with the configured lifetime and size.
func (c *Context) NewQueue() *notify.Queue {
	maxSize := c.Config.Notifications.Max
	if maxSize < 0 {
		maxSize = 0
	}
	return notify.NewQueue(
		notify.WithDefaultDuration(c.Config.NotificationDuration()),
		notify.WithMaxSize(maxSize),
	)
}
