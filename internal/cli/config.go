package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/petspa/internal/config"
)

type ConfigCmd struct {
	Path ConfigPathCmd `cmd:"" help:"Print the config file path."`
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration."`
	Init ConfigInitCmd `cmd:"" help:"Write a config file with the defaults."`
}

type ConfigPathCmd struct{}

func (c *ConfigPathCmd) Run(ctx *Context) error {
	path, err := config.ExpandPath(ctx.ConfigPath)
	if err != nil {
		return err
	}
	ctx.printf("%s\n", path)
	return nil
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *Context) error {
	data, err := yaml.Marshal(ctx.Config)
	if err != nil {
		return err
	}
	ctx.printf("%s", data)
	return nil
}

type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing config file."`
}

func (c *ConfigInitCmd) Run(ctx *Context) error {
	path, err := config.ExpandPath(ctx.ConfigPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	ctx.printf("Wrote %s\n", path)
	return nil
}
