package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/fitcoach/internal/cli"
	"github.com/julianstephens/fitcoach/internal/config"
	"github.com/julianstephens/fitcoach/internal/constants"
	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/logger"
)

var CLI struct {
	Version   kong.VersionFlag
	Store     string `help:"Record store: a .json file, a SQLite path, or a redis:// or postgres:// URL. Defaults to <config-dir>/fitcoach.db (users.json for serve)." env:"FITCOACH_STORE"`
	ConfigDir string `help:"Directory for logs and the default store." type:"path" default:"${config_dir}"`
	Debug     bool   `help:"Enable debug logging to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize fitcoach storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve    cli.ServeCmd    `cmd:"" help:"Serve the REST API."`
	Register cli.RegisterCmd `cmd:"" help:"Create an account and log in."`
	Login    cli.LoginCmd    `cmd:"" help:"Log in to an existing account."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Log out."`
	Status   cli.StatusCmd   `cmd:"" help:"Show the logged-in user and plan."`
	Profile  cli.ProfileCmd  `cmd:"" help:"Edit your profile."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Weight   struct {
		Log     cli.WeightLogCmd     `cmd:"" help:"Log today's weight."`
		History cli.WeightHistoryCmd `cmd:"" help:"Show logged weights." default:"1"`
	} `cmd:"" help:"Track your weight."`
	Plan struct {
		Generate cli.PlanGenerateCmd `cmd:"" help:"Generate a new diet and workout plan."`
		Show     cli.PlanShowCmd     `cmd:"" help:"Show your current plan." default:"withargs"`
	} `cmd:"" help:"Manage your fitness plan."`
	Keyring struct {
		Set    cli.KeyringSetCmd    `cmd:"" help:"Store the Gemini API key in the OS keyring."`
		Delete cli.KeyringDeleteCmd `cmd:"" help:"Remove the Gemini API key from the OS keyring."`
		Status cli.KeyringStatusCmd `cmd:"" help:"Show where the Gemini API key comes from." default:"1"`
	} `cmd:"" help:"Manage the Gemini API key."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	// .env is optional
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal fitness coach: profiles, weight tracking and AI-generated plans"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"config_dir": constants.DefaultConfigDir,
		},
	)

	serving := ctx.Command() == "serve"
	mode := logger.ModeCLI
	switch ctx.Command() {
	case "serve":
		mode = logger.ModeServer
	case "tui":
		mode = logger.ModeTUI
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: CLI.ConfigDir, Mode: mode}); err != nil {
		errors.Fatal(err)
	}
	defer logger.Close()

	target := CLI.Store
	if target == "" {
		if serving {
			target = cfg.Store
		} else {
			target = cli.DefaultStore(CLI.ConfigDir)
		}
	}
	store, err := cli.OpenStore(target)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	// init loads the store itself
	if ctx.Command() != "init" {
		if err := cli.LoadStore(store); err != nil {
			errors.Fatal(err)
		}
	}

	base, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &cli.Context{
		Base:      base,
		Store:     store,
		Config:    cfg,
		ConfigDir: CLI.ConfigDir,
	}
	if err := ctx.Run(appCtx); err != nil {
		stop()
		store.Close()
		errors.Fatal(err)
	}
}
