// Command syl-server serves a seeyoulater database over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/seeyoulater/internal/app"
	"github.com/MrSnakeDoc/seeyoulater/internal/config"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
	"github.com/MrSnakeDoc/seeyoulater/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "syl-server: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "syl-server",
		Short: "Serve a seeyoulater bookmark database over HTTP",
		Long: `syl-server exposes a local seeyoulater database to remote syl clients
and the browser extension. Every API call must carry the X-Username and
X-Password headers configured in the server section.`,
		Version:       version.String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			log := app.NewLogger(cfg)
			defer func() { _ = log.Sync() }()

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				log.Error("failed to start", logger.Error(err))
				return err
			}
			return a.Run()
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML config file")
	cmd.AddCommand(newFlushCacheCmd(&configPath), newPruneTagsCmd(&configPath))
	return cmd
}
