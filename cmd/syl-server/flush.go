package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/seeyoulater/internal/app"
	"github.com/MrSnakeDoc/seeyoulater/internal/config"
	"github.com/MrSnakeDoc/seeyoulater/internal/redis"
	redisstore "github.com/MrSnakeDoc/seeyoulater/internal/store/redis"
)

func newFlushCacheCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "flush-cache [url...]",
		Short: "Drop cached page metadata",
		Long: `Remove page metadata cached in Redis, for the given URLs or, with no
argument, for every URL. Bookmarks already saved are not changed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Redis == nil {
				return errors.New("no redis section configured, nothing is cached")
			}

			log := app.NewLogger(cfg)
			defer func() { _ = log.Sync() }()

			client, err := redis.Connect(cmd.Context(), cfg.Redis, log)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()
			cache := redisstore.NewStore(client, cfg.Redis.TTL)

			if len(args) == 0 {
				if err := cache.FlushMetadata(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Metadata cache flushed.")
				return nil
			}

			for _, url := range args {
				if err := cache.InvalidateMetadata(cmd.Context(), url); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dropped cached metadata for %d URL(s).\n", len(args))
			return nil
		},
	}
}
