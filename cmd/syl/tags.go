package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

func newTagsCmd(opts *globalOptions) *cobra.Command {
	var q domain.TagsQuery

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags with their bookmark counts",
		Long: `List every tag in use, in ascending order of name, or of how many
bookmarks carry them with --sort-by-count. --reverse flips the order, so
'syl tags -cr' lists the most used tags first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			tags, err := s.Tags(cmd.Context(), q)
			if err != nil {
				return err
			}
			return newPrinterFor(cmd, opts).tags(tags)
		},
	}

	cmd.Flags().BoolVarP(&q.SortByCount, "sort-by-count", "c", false, "sort by bookmark count instead of name")
	cmd.Flags().BoolVarP(&q.Reverse, "reverse", "r", false, "reverse the sort order")
	return cmd
}

func newRenameTagCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename-tag <from> <to>",
		Short: "Move every bookmark from one tag to another",
		Long: `Rename a tag. If <to> already exists the two tags are merged: a
bookmark holding both keeps a single <to> tag.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.RenameTag(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return newPrinterFor(cmd, opts).count(n, "Renamed %s to %s on %d %s.",
				args[0], args[1], n, plural("bookmarks", int(n)))
		},
	}
}
