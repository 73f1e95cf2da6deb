package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/petspa/internal/appointments"
	"github.com/julianstephens/petspa/internal/calendar"
	"github.com/julianstephens/petspa/internal/models"
)

type ListCmd struct {
	Date string `short:"d" help:"Day to list (YYYY-MM-DD). Defaults to today."`
}

func (c *ListCmd) Run(ctx *Context) error {
	date := c.Date
	if date == "" {
		date = appointments.FormatDateForAPI(time.Now())
	} else if _, err := appointments.ParseAPIDate(date); err != nil {
		return err
	}

	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	list, err := repo.GetByDate(ctx.Context(), date)
	if err != nil {
		return fmt.Errorf("failed to load appointments: %w", err)
	}

	if len(list) == 0 {
		ctx.printf("No appointments on %s\n", date)
		return nil
	}
	ctx.printf("Appointments on %s (%d):\n", date, len(list))
	printAppointments(ctx, list)
	return nil
}

type ShowCmd struct {
	ID int64 `arg:"" help:"Appointment id."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	a, err := repo.GetByID(ctx.Context(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to load appointment %d: %w", c.ID, err)
	}

	label := ctx.Labels()
	ctx.printf("ID:      %d\n", a.IDValue())
	ctx.printf("Pet:     %s\n", a.PetName)
	ctx.printf("Owner:   %s\n", a.OwnerName)
	ctx.printf("Service: %s\n", a.Service)
	ctx.printf("When:    %s %s\n", a.Date, a.Time)
	ctx.printf("Status:  %s\n", label(a.Status))
	if a.Notes != "" {
		ctx.printf("Notes:   %s\n", a.Notes)
	}
	if a.CreatedAt != "" {
		ctx.printf("Created: %s\n", a.CreatedAt)
	}
	if a.UpdatedAt != "" {
		ctx.printf("Updated: %s\n", a.UpdatedAt)
	}
	return nil
}

type AddCmd struct {
	Pet     string `arg:"" help:"Pet name."`
	Owner   string `arg:"" help:"Owner name."`
	Service string `short:"s" help:"Grooming service." required:""`
	Date    string `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
	Time    string `short:"t" help:"Time (HH:mm). Defaults to now."`
	Notes   string `short:"n" help:"Free-form notes."`
}

func (c *AddCmd) Run(ctx *Context) error {
	now := time.Now()
	form := calendar.Form{
		PetName:   c.Pet,
		OwnerName: c.Owner,
		Service:   strings.TrimSpace(c.Service),
		Date:      appointments.Today(now),
		Time:      now,
		Notes:     c.Notes,
	}
	if c.Date != "" {
		d, err := appointments.ParseAPIDate(c.Date)
		if err != nil {
			return err
		}
		form.Date = d
	}
	if c.Time != "" {
		t, err := appointments.ParseAPITime(c.Time)
		if err != nil {
			return err
		}
		form.Time = t
	}
	if verr := form.Validate(ctx.Messages()); verr != nil {
		return verr
	}

	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	created, err := repo.Create(ctx.Context(), form.Appointment())
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	ctx.printf("Created %s\n", created)
	return nil
}

type EditCmd struct {
	ID      int64  `arg:"" help:"Appointment id."`
	Pet     string `help:"New pet name."`
	Owner   string `help:"New owner name."`
	Service string `short:"s" help:"New service."`
	Date    string `short:"d" help:"New date (YYYY-MM-DD)."`
	Time    string `short:"t" help:"New time (HH:mm)."`
	Notes   string `short:"n" help:"New notes."`
}

// update collects the flags that were set. Status is never touched here.
func (c *EditCmd) update() (models.AppointmentUpdate, error) {
	var u models.AppointmentUpdate
	set := func(dst **string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = &v
		}
	}
	set(&u.PetName, c.Pet)
	set(&u.OwnerName, c.Owner)
	set(&u.Service, c.Service)
	set(&u.Notes, c.Notes)

	if c.Date != "" {
		if _, err := appointments.ParseAPIDate(c.Date); err != nil {
			return u, err
		}
		d := c.Date
		u.Date = &d
	}
	if c.Time != "" {
		tm, err := appointments.NormalizeTime(c.Time)
		if err != nil {
			return u, err
		}
		u.Time = &tm
	}
	return u, nil
}

func (c *EditCmd) Run(ctx *Context) error {
	u, err := c.update()
	if err != nil {
		return err
	}
	if u.Empty() {
		return fmt.Errorf("nothing to change")
	}

	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	updated, err := repo.Update(ctx.Context(), c.ID, u)
	if err != nil {
		return fmt.Errorf("failed to update appointment %d: %w", c.ID, err)
	}
	ctx.printf("Updated %s\n", updated)
	return nil
}

type StatusCmd struct {
	ID  int64  `arg:"" help:"Appointment id."`
	Set string `help:"Status to set (pending|in_progress|completed|cancelled). Cycles to the next status when omitted."`
}

func (c *StatusCmd) Run(ctx *Context) error {
	repo, err := ctx.Repository()
	if err != nil {
		return err
	}

	var next models.Status
	if c.Set != "" {
		next, err = models.ParseStatus(c.Set)
		if err != nil {
			return err
		}
	} else {
		current, err := repo.GetByID(ctx.Context(), c.ID)
		if err != nil {
			return fmt.Errorf("failed to load appointment %d: %w", c.ID, err)
		}
		next = current.Status.Next()
	}

	updated, err := repo.Update(ctx.Context(), c.ID, models.StatusUpdate(next))
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	ctx.printf("%s: %s\n", updated.PetName, ctx.Labels()(updated.Status))
	return nil
}

type DeleteCmd struct {
	ID  int64 `arg:"" help:"Appointment id."`
	Yes bool  `short:"y" help:"Do not ask for confirmation."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if !c.Yes {
		ctx.printf("%s [y/N]: ", ctx.Messages().DeleteConfirm)
		reader := bufio.NewReader(ctx.stdin())
		response, _ := reader.ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			ctx.printf("Cancelled.\n")
			return nil
		}
	}

	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx.Context(), c.ID); err != nil {
		return fmt.Errorf("failed to delete appointment %d: %w", c.ID, err)
	}
	ctx.printf("Deleted appointment %d\n", c.ID)
	return nil
}

type SearchCmd struct {
	Owner string `arg:"" help:"Owner name or part of it."`
}

func (c *SearchCmd) Run(ctx *Context) error {
	query := strings.TrimSpace(c.Owner)
	if query == "" {
		return fmt.Errorf("owner name is required")
	}

	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	list, err := repo.SearchByOwner(ctx.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(list) == 0 {
		ctx.printf("No appointments for %q\n", query)
		return nil
	}
	printAppointments(ctx, list)
	return nil
}

func printAppointments(ctx *Context, list []models.Appointment) {
	label := ctx.Labels()
	for _, a := range list {
		ctx.printf("  [%d] %s %s  %s (%s) - %s [%s]\n",
			a.IDValue(), a.Date, a.Time, a.PetName, a.OwnerName, a.Service, label(a.Status))
	}
}
