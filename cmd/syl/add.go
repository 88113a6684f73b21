package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

func newAddCmd(opts *globalOptions) *cobra.Command {
	var (
		tags        []string
		title       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Save a bookmark",
		Long: `Save a bookmark for url with optional tags.

When neither --title nor --description is given, the page is fetched and
its title and description are used. Adding a URL that is already saved
prints the existing bookmark and changes nothing.

Examples:
  syl add https://go.dev -t go -t docs
  syl add https://example.com --title "Example"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.Add(cmd.Context(), domain.AddRequest{
				URL:         args[0],
				Tags:        tags,
				Title:       domain.StringPtr(title),
				Description: domain.StringPtr(description),
			})
			if err != nil {
				return err
			}
			return newPrinterFor(cmd, opts).added(res)
		},
	}

	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "tag to attach (repeatable)")
	cmd.Flags().StringVar(&title, "title", "", "title instead of the page's own")
	cmd.Flags().StringVar(&description, "description", "", "description instead of the page's own")
	return cmd
}
