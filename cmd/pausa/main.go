package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/pausa/internal/cli"
	"github.com/julianstephens/pausa/internal/cli/backups"
	"github.com/julianstephens/pausa/internal/cli/history"
	"github.com/julianstephens/pausa/internal/cli/settings"
	"github.com/julianstephens/pausa/internal/cli/system"
	"github.com/julianstephens/pausa/internal/config"
	"github.com/julianstephens/pausa/internal/constants"
	"github.com/julianstephens/pausa/internal/errors"
	"github.com/julianstephens/pausa/internal/logger"
	"github.com/julianstephens/pausa/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Database path. A .json suffix stores check-ins in a JSON file, :memory: keeps nothing." default:"${db_path}"`
	Settings string `help:"Settings file (TOML)." default:"${settings_path}"`
	DebugLog bool   `name:"debug" help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize pausa storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Start a check-in in the interactive TUI." default:"1"`
	Debug   system.DebugCmd   `cmd:"" help:"Debug commands for troubleshooting."`
	History struct {
		List   history.ListCmd   `cmd:"" help:"List check-ins, newest first." default:"1"`
		Show   history.ShowCmd   `cmd:"" help:"Show one check-in."`
		Delete history.DeleteCmd `cmd:"" help:"Delete one check-in."`
		Clear  history.ClearCmd  `cmd:"" help:"Delete every check-in."`
	} `cmd:"" help:"Browse past check-ins."`
	Summary history.SummaryCmd `cmd:"" help:"Print or copy a check-in summary to share with a therapist."`
	Share   history.ShareCmd   `cmd:"" help:"Print the share text or a WhatsApp link for a check-in."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Cfg struct {
		Show settings.ConfigShowCmd `cmd:"" help:"Print the effective settings." default:"1"`
		Init settings.ConfigInitCmd `cmd:"" help:"Write the default settings file."`
	} `cmd:"" name:"config" help:"Manage settings."`
}

// selfLoading commands open the store themselves
var selfLoading = map[string]bool{
	"init":          true,
	"migrate":       true,
	"doctor":        true,
	"tui":           true,
	"config show":   true,
	"config init":   true,
	"debug db-path": true,
	"debug dump":    true,
}

// commandPath drops positional placeholders such as "<id>" from a kong command string
func commandPath(command string) string {
	var parts []string
	for _, f := range strings.Fields(command) {
		if !strings.HasPrefix(f, "<") {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Pausa Interna: a short guided self check-in."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":       constants.Version,
			"db_path":       constants.DefaultConfigPath,
			"settings_path": constants.DefaultSettings,
		},
	)

	dbPath, err := config.ExpandHome(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	settingsPath, err := config.ExpandHome(CLI.Settings)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.DebugLog, ConfigDir: filepath.Dir(settingsPath)}); err != nil {
		logger.InitWriter(os.Stderr, CLI.DebugLog)
		logger.Warn("file logging unavailable", "error", err)
	}

	cfg, err := config.Load(settingsPath)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:        storage.Open(dbPath),
		Config:       cfg,
		SettingsPath: settingsPath,
	}

	if !selfLoading[commandPath(ctx.Command())] {
		if err := appCtx.LoadOrInit(); err != nil {
			errors.Fatal(err)
		}
		defer appCtx.Store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
