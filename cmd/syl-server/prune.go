package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/seeyoulater/internal/config"
	"github.com/MrSnakeDoc/seeyoulater/internal/store/sqlite"
	"github.com/MrSnakeDoc/seeyoulater/internal/utils"
)

func newPruneTagsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "prune-tags",
		Short: "Delete tags that no bookmark uses",
		Long: `Delete every tag without bookmarks from the local database, such as the
old name kept by a rename. Tags are never removed otherwise; run this by hand
when the unused ones should go.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			if err := cfg.EnsureDatabaseDir(); err != nil {
				return err
			}
			store, err := sqlite.Open(cmd.Context(), cfg.Database, nil)
			if err != nil {
				return err
			}
			defer utils.Close(store)

			n, err := store.PruneTags(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d unused tag(s).\n", n)
			return nil
		},
	}
}
