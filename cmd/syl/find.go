package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

// filterFlags are the search filters shared by find and delete.
type filterFlags struct {
	tags    []string
	allTags bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.tags, "tag", "t", nil, "only bookmarks with this tag (repeatable)")
	cmd.Flags().BoolVarP(&f.allTags, "all-tags", "a", false, "require every --tag instead of any of them")
}

// query builds the search from the positional words and the flags.
func (f *filterFlags) query(args []string) domain.SearchQuery {
	return domain.SearchQuery{
		Query: domain.StringPtr(strings.TrimSpace(strings.Join(args, " "))),
		Tags:  f.tags,
		Match: domain.MatchModeFromAllTags(f.allTags),
	}
}

func (f *filterFlags) empty(args []string) bool {
	q := f.query(args)
	return q.Query == nil && len(domain.NormalizeTags(q.Tags)) == 0
}

func newFindCmd(opts *globalOptions) *cobra.Command {
	filter := &filterFlags{}

	cmd := &cobra.Command{
		Use:     "find [query...]",
		Aliases: []string{"search"},
		Short:   "Search bookmarks by text and tags",
		Long: `List bookmarks whose url, title or description contains the query,
filtered by tags. Without any filter every bookmark is listed.

Examples:
  syl find golang
  syl find -t go -t docs          # tagged go OR docs
  syl find -t go -t docs --all-tags  # tagged go AND docs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			found, err := s.Find(cmd.Context(), filter.query(args))
			if err != nil {
				return err
			}
			return newPrinterFor(cmd, opts).bookmarks(found)
		},
	}

	filter.register(cmd)
	return cmd
}
