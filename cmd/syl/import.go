package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/seeyoulater/internal/sources/homepage"
)

// importSummary is the outcome of an import, also its JSON form.
type importSummary struct {
	Added    int `json:"added"`
	Existing int `json:"existing"`
}

func newImportCmd(opts *globalOptions) *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "import <bookmarks.yaml>",
		Short: "Import bookmarks from a Homepage bookmarks.yaml",
		Long: `Import every bookmark of a Homepage dashboard bookmarks.yaml file.

Each bookmark keeps its name as title and gets its group name as a tag.
URLs that are already saved are left untouched. Pages are not fetched.

Examples:
  syl import ~/homepage/config/bookmarks.yaml -t homepage`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := homepage.Load(args[0])
			if err != nil {
				return err
			}
			reqs := homepage.ToAddRequests(config, tags)

			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			var sum importSummary
			for _, req := range reqs {
				res, err := s.Add(cmd.Context(), req)
				if err != nil {
					return err
				}
				if res.Created {
					sum.Added++
				} else {
					sum.Existing++
				}
			}
			return newPrinterFor(cmd, opts).imported(sum)
		},
	}

	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "extra tag for every imported bookmark (repeatable)")
	return cmd
}
