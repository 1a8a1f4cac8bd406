package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/dayhive/dayhive/internal/api"
	"github.com/dayhive/dayhive/internal/cli"
	"github.com/dayhive/dayhive/internal/config"
	"github.com/dayhive/dayhive/internal/constants"
	"github.com/dayhive/dayhive/internal/demo"
	"github.com/dayhive/dayhive/internal/entrystore"
	"github.com/dayhive/dayhive/internal/projectcache"
	"github.com/dayhive/dayhive/internal/storage"
	"github.com/dayhive/dayhive/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/dayhive/dayhive.db"`

	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive timer dashboard." default:"1"`
	Track    cli.TrackCmd    `cmd:"" help:"Start, stop, or switch tracking for a project."`
	Status   cli.StatusCmd   `cmd:"" help:"Show the active entry and pending totals."`
	Records  cli.RecordsCmd  `cmd:"" help:"List tracked entries grouped by date."`
	Edit     cli.EditCmd     `cmd:"" help:"Edit a tracked entry."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete a tracked entry."`
	Send     cli.SendCmd     `cmd:"" help:"Submit a day's completed entries."`
	Submit   cli.SubmitCmd   `cmd:"" help:"Submit a single report line manually."`
	Projects cli.ProjectsCmd `cmd:"" help:"List available projects."`
	Reports  cli.ReportsCmd  `cmd:"" help:"Show submitted reports from the service."`
	Login    cli.LoginCmd    `cmd:"" help:"Sign in and remember an identity."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Sign out and invalidate cached data."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Check storage and tracking health."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Snapshot the storage file."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage storage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("dayhive"),
		kong.Description("Personal time tracking and report submission"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level := zerolog.WarnLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	// Determine storage type based on extension
	var kv storage.KV
	if strings.HasSuffix(CLI.Config, ".json") {
		kv = storage.NewFileKV(CLI.Config)
	} else {
		kv, err = storage.NewSQLiteKV(CLI.Config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer kv.Close()

	identity, err := cli.LoadIdentity(context.Background(), kv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var service cli.Service
	if identity == constants.DemoNamespace {
		service = demo.NewClient()
	} else {
		opts := []api.Option{
			api.WithLogger(log),
			api.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		}
		if cfg.APIToken != "" {
			opts = append(opts, api.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIToken})))
		}
		service = api.New(cfg.APIURL, opts...)
	}

	store := entrystore.New(kv, log)
	appCtx := &cli.Context{
		Store:    store,
		Tracker:  tracker.New(store, log),
		Cache:    projectcache.New(kv, service, cfg.ProjectTTL, log),
		API:      service,
		KV:       kv,
		Identity: identity,

		StorePath: CLI.Config,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
