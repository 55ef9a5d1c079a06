package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/pado/internal/cli"
	"github.com/julianstephens/pado/internal/config"
	"github.com/julianstephens/pado/internal/constants"
	"github.com/julianstephens/pado/internal/errors"
	"github.com/julianstephens/pado/internal/keyring"
	"github.com/julianstephens/pado/internal/kv"
	"github.com/julianstephens/pado/internal/logger"
	"github.com/julianstephens/pado/internal/reminder"
	"github.com/julianstephens/pado/internal/session"
	"github.com/julianstephens/pado/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Store   string `help:"Storage location: a .json or .db path, postgres://, valkey:// or memory." default:"${store}"`
	Debug   bool   `help:"Mirror logs to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize pado storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Weather  cli.WeatherCmd  `cmd:"" help:"List weathers or pick today's."`
	Diary    cli.DiaryCmd    `cmd:"" help:"Write or read diary entries."`
	Breathe  cli.BreatheCmd  `cmd:"" help:"Run or log a breathing exercise."`
	Day      cli.DayCmd      `cmd:"" help:"Show the record of a day."`
	Calendar cli.CalendarCmd `cmd:"" help:"Show a month of records."`
	Settings cli.SettingsCmd `cmd:"" help:"Show or change settings."`
	Clear    cli.ClearCmd    `cmd:"" help:"Delete all records."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage backups."`
	Remind   cli.RemindCmd   `cmd:"" help:"Run the daily reminder."`
	Secret   cli.SecretCmd   `cmd:"" help:"Manage the remote backend password."`
}

// commands that must work before the store has been initialized
var noLoad = map[string]bool{
	"init":   true,
	"secret": true,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		errors.Fatal(err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Emotional weather journal"),
		kong.UsageOnError(),
		kong.Vars{
			"version":         constants.Version,
			"store":           cfg.Store,
			"remind_interval": reminder.DefaultInterval.String(),
		},
	)

	cfg.Store = config.ExpandHome(CLI.Store)
	cfg.Debug = cfg.Debug || CLI.Debug

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir()}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		errors.Fatal(err)
	}

	var password string
	if kv.IsRemote(cfg.Store) {
		password, err = keyring.ResolvePassword(cfg.BackendPassword)
		if err != nil {
			logger.Warn("could not read backend password from keyring", "error", err)
		}
	}

	backend, err := kv.Open(cfg.Store, kv.Options{Password: password, Timeout: cfg.ValkeyTimeout})
	if err != nil {
		errors.Fatal(err)
	}
	defer backend.Close()

	command := strings.Fields(ctx.Command())
	if len(command) > 0 && !noLoad[command[0]] {
		if err := backend.Load(); err != nil {
			backend.Close()
			errors.Fatal(err)
		}
	}

	appCtx := &cli.Context{
		Store:   storage.New(backend, storage.WithLocation(loc)),
		Session: session.New(),
		Config:  cfg,
		Out:     os.Stdout,
		In:      os.Stdin,
	}

	if err := ctx.Run(appCtx); err != nil {
		backend.Close()
		errors.Fatal(err)
	}
}
