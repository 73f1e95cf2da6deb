package main

import (
	"github.com/alecthomas/kong"

	"github.com/julianstephens/petspa/internal/cli"
	"github.com/julianstephens/petspa/internal/config"
	"github.com/julianstephens/petspa/internal/constants"
	"github.com/julianstephens/petspa/internal/errors"
	"github.com/julianstephens/petspa/internal/logger"
)

var version = constants.Version

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_path}"`
	APIURL  string `name:"api-url" help:"Appointment service base URL. Overrides the config file."`
	Debug   bool   `help:"Enable debug logging."`

	Tui      cli.TuiCmd    `cmd:"" help:"Launch the interactive calendar." default:"1"`
	List     cli.ListCmd   `cmd:"" help:"List the appointments of a day."`
	Show     cli.ShowCmd   `cmd:"" help:"Show an appointment."`
	Add      cli.AddCmd    `cmd:"" help:"Schedule a new appointment."`
	Edit     cli.EditCmd   `cmd:"" help:"Edit an appointment."`
	Status   cli.StatusCmd `cmd:"" help:"Advance or set an appointment's status."`
	Delete   cli.DeleteCmd `cmd:"" help:"Delete an appointment."`
	Search   cli.SearchCmd `cmd:"" help:"Search appointments by owner name."`
	Serve    cli.ServeCmd  `cmd:"" help:"Run the development appointment service."`
	Backup   cli.BackupCmd `cmd:"" help:"Manage snapshots of the development database."`
	Settings cli.ConfigCmd `cmd:"" name:"config" help:"Manage the config file."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Pet grooming appointment calendar"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.APIURL != "" {
		cfg.APIURL = CLI.APIURL
		cfg.Normalize()
	}

	dir, err := config.Dir(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	mode := logger.ModeClient
	if ctx.Command() == "serve" {
		mode = logger.ModeService
	}
	// The calendar owns the terminal, so it never logs to stderr.
	if err := logger.Init(logger.Config{
		Mode:      mode,
		Debug:     CLI.Debug,
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		ConfigDir: dir,
		Stderr:    ctx.Command() != "tui",
	}); err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Config:     cfg,
		ConfigPath: CLI.Config,
		Debug:      CLI.Debug,
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
