package main

import (
	"context"
	"net/http"
	"time"

	"github.com/flat/lupusregina/anilist"
	"github.com/flat/lupusregina/bot"
	"github.com/flat/lupusregina/config"
	"github.com/flat/lupusregina/database"
	"github.com/flat/lupusregina/fandom"
	"github.com/flat/lupusregina/kvstore"
	"github.com/flat/lupusregina/logger"
	"github.com/flat/lupusregina/prefix"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const httpTimeout = 15 * time.Second

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to Discord and serve commands until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context())
		},
	}
}

func (a *app) run(ctx context.Context) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.New("lupus", level)
	defer log.Sync()

	db, err := database.NewSqliteDatabase(&database.Config{
		Log:  log.Named("database"),
		Path: a.cfg.DatabasePath,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := kvstore.NewStore(&kvstore.Config{
		Path: a.cfg.CachePath,
		Log:  log.Named("kvstore"),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	httpClient := &http.Client{Timeout: httpTimeout}

	b, err := bot.NewBot(&bot.Config{
		Token:  a.cfg.Token,
		Shards: a.cfg.Shards,
		Log:    log,
		Level:  level,
		Prefixes: prefix.NewService(&prefix.Config{
			Store:   db,
			Log:     log.Named("prefix"),
			Default: a.cfg.DefaultPrefix,
		}),
		Store:           store,
		AniList:         anilist.NewClient(a.cfg.AniListEndpoint, httpClient),
		Fandom:          fandom.NewClient(a.cfg.FandomURL, httpClient),
		AniListInterval: a.cfg.AniListInterval,
		LookupTTL:       a.cfg.LookupTTL,
		Status:          a.cfg.Status,
		Reload: func() (*config.Config, error) {
			return config.Reload(a.envFiles()...)
		},
	})
	if err != nil {
		return err
	}
	defer b.Close()

	if err := b.Run(ctx); err != nil {
		return err
	}
	log.Info("bot is running", zap.String("default_prefix", a.cfg.DefaultPrefix))

	<-ctx.Done()
	log.Info("shutting down")
	return nil
}
