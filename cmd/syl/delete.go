package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

func newDeleteCmd(opts *globalOptions) *cobra.Command {
	var (
		filter = &filterFlags{}
		yes    bool
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "delete [query...]",
		Short: "Delete the bookmarks a search matches",
		Long: `Delete every bookmark that 'syl find' would list with the same
arguments. The matches are shown and confirmation is asked unless --yes is
given. Deleting without any filter requires --all.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter.empty(args) && !all {
				return domain.InvalidArgument("no filter given; pass --all to delete every bookmark")
			}
			q := filter.query(args)

			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			p := newPrinterFor(cmd, opts)
			if !yes {
				matches, err := s.Find(cmd.Context(), q)
				if err != nil {
					return err
				}
				if len(matches) == 0 {
					return p.count(0, "No bookmarks match.")
				}
				if err := p.bookmarks(matches); err != nil {
					return err
				}
				if !confirm(cmd, fmt.Sprintf("Delete %d %s?", len(matches), plural("bookmarks", len(matches)))) {
					return p.count(0, "Nothing deleted.")
				}
			}

			n, err := s.Delete(cmd.Context(), q)
			if err != nil {
				return err
			}
			return p.count(n, "Deleted %d %s.", n, plural("bookmarks", int(n)))
		},
	}

	filter.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().BoolVar(&all, "all", false, "allow deleting without any filter")
	return cmd
}

// confirm asks a yes/no question on the command's input. Anything but
// y or yes, including end of input, is a no.
func confirm(cmd *cobra.Command, question string) bool {
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", question)

	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
