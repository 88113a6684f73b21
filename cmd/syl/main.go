// Command syl saves, searches and tags bookmarks, either in a local SQLite
// database or on a remote seeyoulater server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/seeyoulater/internal/version"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		// SilenceErrors is set, so report here.
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	noColor    bool
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "syl",
		Short: "See you later: a bookmark manager with tags",
		Long: `syl keeps bookmarks with tags in a local SQLite database, or on a
syl-server when a remote section is configured.

Configuration is read from $XDG_CONFIG_HOME/seeyoulater/config.yaml (or
--config), then from SYL_* environment variables.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to the YAML config file")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print results as JSON")

	root.AddCommand(
		newAddCmd(opts),
		newFindCmd(opts),
		newTagsCmd(opts),
		newRenameTagCmd(opts),
		newDeleteCmd(opts),
		newImportCmd(opts),
	)
	return root
}
