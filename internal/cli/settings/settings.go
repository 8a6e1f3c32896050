package settings

import (
	"fmt"

	"github.com/julianstephens/pausa/internal/cli"
	"github.com/julianstephens/pausa/internal/config"
)

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Settings().Encode()
	if err != nil {
		return err
	}
	if ctx.SettingsPath != "" {
		ctx.Printf("# %s\n", ctx.SettingsPath)
	}
	ctx.Printf("%s", data)
	return nil
}

type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing config file."`
}

// Run writes the default settings, not the loaded ones, so a broken file can be reset
func (c *ConfigInitCmd) Run(ctx *cli.Context) error {
	if ctx.SettingsPath == "" {
		return fmt.Errorf("no settings path configured")
	}
	if err := config.Default().Write(ctx.SettingsPath, c.Force); err != nil {
		return err
	}
	ctx.Printf("Wrote default settings to: %s\n", ctx.SettingsPath)
	return nil
}
